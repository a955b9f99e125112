package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

const breakerName = "tmdb"

// BreakerSettings tunes the circuit breaker around the provider.
type BreakerSettings struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	Timeout      time.Duration
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests
// and probes again after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MinRequests: 10, FailureRatio: 0.6, Interval: time.Minute, Timeout: 30 * time.Second}
}

// BreakerCatalog guards a ports.Catalog with a circuit breaker. While open,
// calls fail fast with domain.ErrUpstreamUnavailable.
type BreakerCatalog struct {
	next ports.Catalog
	cb   *gobreaker.CircuitBreaker[json.RawMessage]
}

func NewBreakerCatalog(next ports.Catalog, s BreakerSettings, log zerolog.Logger) *BreakerCatalog {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		// Unknown ids and rejected input say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &BreakerCatalog{next: next, cb: cb}
}

func (b *BreakerCatalog) Popular(ctx context.Context, resource domain.Resource, page int) (json.RawMessage, error) {
	return b.execute(func() (json.RawMessage, error) { return b.next.Popular(ctx, resource, page) })
}

func (b *BreakerCatalog) Details(ctx context.Context, resource domain.Resource, id int) (json.RawMessage, error) {
	return b.execute(func() (json.RawMessage, error) { return b.next.Details(ctx, resource, id) })
}

func (b *BreakerCatalog) Search(ctx context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error) {
	return b.execute(func() (json.RawMessage, error) { return b.next.Search(ctx, resource, query, page) })
}

// State reports the breaker state for readiness checks.
func (b *BreakerCatalog) State() string {
	return b.cb.State().String()
}

func (b *BreakerCatalog) execute(fn func() (json.RawMessage, error)) (json.RawMessage, error) {
	body, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return body, err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
