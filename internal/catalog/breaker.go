package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/metrics"
)

// BreakerSettings configures a Breaker.
type BreakerSettings struct {
	Name string
	// MinRequests is how many requests are counted before the breaker may trip.
	MinRequests uint32
	// FailureRatio trips the breaker once reached.
	FailureRatio float64
	// Interval resets the counts while closed. Zero never resets.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// MaxRequests is how many trial requests are allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerSettings trips at 60% failures over at least 10 requests
// and retries after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "catalog",
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MaxRequests:  3,
	}
}

// Breaker wraps a Catalog with a circuit breaker. While open every call
// fails fast with gobreaker.ErrOpenState.
type Breaker struct {
	next Catalog
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreaker wraps next.
func NewBreaker(next Catalog, s BreakerSettings) *Breaker {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().Str("breaker", s.Name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio).Msg("opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// A caller giving up says nothing about catalog health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{next: next, cb: cb, name: s.Name}
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return result, err
}

func typed[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, _ := result.(T)
	return v, nil
}

func (b *Breaker) Recommend(ctx context.Context, targets Targets, seeds Seeds, market string, limit int) ([]Track, error) {
	return typed[[]Track](b.execute(func() (any, error) {
		return b.next.Recommend(ctx, targets, seeds, market, limit)
	}))
}

func (b *Breaker) Search(ctx context.Context, query, market string, limit int) ([]Track, error) {
	return typed[[]Track](b.execute(func() (any, error) {
		return b.next.Search(ctx, query, market, limit)
	}))
}

func (b *Breaker) AudioFeatures(ctx context.Context, ids []string) (map[string]AudioFeatures, error) {
	return typed[map[string]AudioFeatures](b.execute(func() (any, error) {
		return b.next.AudioFeatures(ctx, ids)
	}))
}

func (b *Breaker) GenreSeeds(ctx context.Context) ([]string, error) {
	return typed[[]string](b.execute(func() (any, error) {
		return b.next.GenreSeeds(ctx)
	}))
}

func (b *Breaker) FindArtist(ctx context.Context, name string) (string, error) {
	return typed[string](b.execute(func() (any, error) {
		return b.next.FindArtist(ctx, name)
	}))
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
