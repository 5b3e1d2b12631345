package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"medexplain/internal/config"
	"medexplain/internal/observability/metrics"
	"medexplain/internal/port"
)

// BreakerParser wraps a provider in a gobreaker circuit.
// Rate limits and caller cancellation do not count as provider failures.
type BreakerParser struct {
	next    port.DocumentParser
	cb      *gobreaker.CircuitBreaker
	name    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewBreakerParser creates a BreakerParser for the named provider.
func NewBreakerParser(name string, next port.DocumentParser, cfg config.BreakerConfig, logger *zap.Logger, m *metrics.Metrics) *BreakerParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	b := &BreakerParser{
		next:    next,
		name:    name,
		logger:  logger,
		metrics: m,
	}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxHalfOpen,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			b.metrics.SetBreakerState(name, int(to))
		},
		IsSuccessful: isBreakerSuccess,
	})
	m.SetBreakerState(name, int(gobreaker.StateClosed))
	return b
}

func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// State returns the current circuit state.
func (b *BreakerParser) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Parse(ctx, input)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s circuit open: %w", b.name, err)
		}
		return nil, err
	}
	return result.(*port.ParseOutput), nil
}
