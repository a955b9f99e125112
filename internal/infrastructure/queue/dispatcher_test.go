package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
)

type recordingSink struct {
	mu   sync.Mutex
	got  []domain.Submission
	fail bool
}

func (s *recordingSink) Record(_ context.Context, sub domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, sub)
	if s.fail {
		return errors.New("sink down")
	}
	return nil
}

func (s *recordingSink) snapshot() []domain.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Submission(nil), s.got...)
}

func TestDispatcher_RecordsEverythingBeforeWaitReturns(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(3, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 50; i++ {
		d.Enqueue(domain.Submission{Kind: domain.SubmissionFeedback, Username: "user", FilmID: i})
	}
	cancel()
	d.Wait()

	got := sink.snapshot()
	if len(got) != 50 {
		t.Fatalf("expected 50 recorded submissions, got %d", len(got))
	}
	// One username maps to one worker, so order is preserved.
	for i, s := range got {
		if s.FilmID != i {
			t.Fatalf("submission %d out of order: film id %d", i, s.FilmID)
		}
	}
}

func TestDispatcher_DrainsBufferedOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	for _, u := range []string{"a", "b", "c", "d"} {
		d.Enqueue(domain.Submission{Kind: domain.SubmissionSuggestion, Username: u, FilmName: "Alien"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(sink.snapshot()); got != 4 {
		t.Fatalf("expected 4 drained submissions, got %d", got)
	}
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(1, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	d.Enqueue(domain.Submission{Username: "x"})
	d.Enqueue(domain.Submission{Username: "x"})
	cancel()
	d.Wait()

	if got := len(sink.snapshot()); got != 2 {
		t.Fatalf("expected both submissions attempted, got %d", got)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingSink{}, zerolog.Nop())
	first := d.shardIndex("filmuser")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("filmuser"); got != first {
			t.Fatalf("shard changed: %d vs %d", got, first)
		}
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingSink{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestLogSink_Record(t *testing.T) {
	s := NewLogSink(zerolog.Nop())
	if err := s.Record(context.Background(), domain.Submission{Kind: domain.SubmissionFeedback}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(1, sink, zerolog.Nop())

	// Workers are not started, so nothing drains the channel.
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(domain.Submission{Kind: domain.SubmissionFeedback, Username: "u", FilmID: i + 1}) {
			t.Fatalf("submission %d rejected before the buffer was full", i)
		}
	}

	done := make(chan bool, 1)
	go func() { done <- d.Enqueue(domain.Submission{Kind: domain.SubmissionFeedback, Username: "u"}) }()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected overflow submission to be dropped")
		}
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()
	if got := len(sink.snapshot()); got != channelBuffer {
		t.Fatalf("expected %d buffered submissions recorded, got %d", channelBuffer, got)
	}
}
