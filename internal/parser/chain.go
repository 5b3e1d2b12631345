package parser

import (
	"fmt"

	"go.uber.org/zap"

	"medexplain/internal/config"
	"medexplain/internal/observability/metrics"
	"medexplain/internal/port"
)

// BuildChain creates every configured provider, wraps each one in metrics and a
// circuit breaker, and combines them into a FallbackParser when more than one is set.
func BuildChain(cfg *config.ParserConfig, breaker config.BreakerConfig, logger *zap.Logger, m *metrics.Metrics) (port.DocumentParser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	providerCfgs := cfg.Providers()
	parsers := make([]port.DocumentParser, 0, len(providerCfgs))
	names := make([]string, 0, len(providerCfgs))
	for i, pc := range providerCfgs {
		p, err := NewParser(pc)
		if err != nil {
			return nil, fmt.Errorf("creating parser %d (%s): %w", i+1, pc.Provider, err)
		}
		name := pc.Provider
		wrapped := NewBreakerParser(name, NewInstrumentedParser(name, p, m), breaker, logger, m)
		parsers = append(parsers, wrapped)
		names = append(names, name)
		logger.Info("parser provider configured",
			zap.Int("tier", i+1),
			zap.String("provider", name),
			zap.String("model", pc.DefaultModel))
	}

	if len(parsers) == 1 {
		return parsers[0], nil
	}
	return NewFallbackParser(parsers, names, logger), nil
}
