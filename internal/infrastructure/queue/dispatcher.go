package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher hands accepted submissions to a fixed set of workers, sharded
// by username so one user's submissions are recorded in order.
type Dispatcher struct {
	workers []chan domain.Submission
	sink    ports.SubmissionSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.SubmissionSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Submission, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Submission, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and
// stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a submission to the worker responsible for its username.
// It never blocks: when that worker's buffer is full the submission is
// logged, counted and dropped, and Enqueue reports false.
func (d *Dispatcher) Enqueue(s domain.Submission) bool {
	idx := d.shardIndex(s.Username)
	select {
	case d.workers[idx] <- s:
		metrics.DispatcherQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.SubmissionsDroppedTotal.WithLabelValues(string(s.Kind)).Inc()
		d.log.Warn().
			Str("receipt_id", s.ReceiptID).
			Str("kind", string(s.Kind)).
			Int("worker_id", idx).
			Msg("dispatcher queue full, submission dropped")
		return false
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Submission) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case s := <-ch:
			metrics.DispatcherQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.record(ctx, id, s)
		}
	}
}

// drain records whatever is still buffered once shutdown has begun.
func (d *Dispatcher) drain(id int, ch <-chan domain.Submission) {
	for {
		select {
		case s := <-ch:
			d.record(context.Background(), id, s)
		default:
			metrics.DispatcherQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, s domain.Submission) {
	if err := d.sink.Record(ctx, s); err != nil {
		d.log.Error().Err(err).
			Str("receipt_id", s.ReceiptID).
			Str("kind", string(s.Kind)).
			Int("worker_id", id).
			Msg("submission recording failed")
	}
}
