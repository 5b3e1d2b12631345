package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/config"
	"medexplain/internal/parser"
	"medexplain/internal/port"
)

// stubParser is a minimal DocumentParser for testing the factory.
type stubParser struct {
	model string
}

func (s *stubParser) Parse(_ context.Context, _ port.ParseInput) (*port.ParseOutput, error) {
	return &port.ParseOutput{ModelUsed: s.model, StructuredData: []byte(`{}`)}, nil
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return &stubParser{model: cfg.DefaultModel}, nil
	})

	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider:     "test-provider",
		APIKey:       "key",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Contains(t, parser.RegisteredProviders(), "test-provider")
}

func TestFactory_UnknownProvider(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{Provider: "nonexistent-provider-xyz", APIKey: "key"})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestFactory_MissingAPIKey(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return &stubParser{}, nil
	})

	_, err := parser.NewParser(&config.ParserProviderConfig{Provider: "test-provider"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestBuildChain_SingleProvider(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return &stubParser{model: "stub"}, nil
	})

	chain, err := parser.BuildChain(&config.ParserConfig{
		Primary: config.ParserProviderConfig{Provider: "test-provider", APIKey: "key"},
	}, config.BreakerConfig{FailureThreshold: 2}, nil, nil)
	require.NoError(t, err)

	out, err := chain.Parse(context.Background(), port.ParseInput{Prompt: "p", Task: parser.TaskCheckInteraction})
	require.NoError(t, err)
	assert.Equal(t, "stub", out.ModelUsed)
}

func TestBuildChain_MultipleProviders(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return &stubParser{model: cfg.DefaultModel}, nil
	})

	chain, err := parser.BuildChain(&config.ParserConfig{
		Primary:   config.ParserProviderConfig{Provider: "test-provider", APIKey: "key", DefaultModel: "first"},
		Secondary: config.ParserProviderConfig{Provider: "test-provider", APIKey: "key", DefaultModel: "second"},
	}, config.BreakerConfig{}, nil, nil)
	require.NoError(t, err)

	_, ok := chain.(*parser.FallbackParser)
	assert.True(t, ok)
}

func TestBuildChain_UnknownProvider(t *testing.T) {
	_, err := parser.BuildChain(&config.ParserConfig{
		Primary: config.ParserProviderConfig{Provider: "missing", APIKey: "key"},
	}, config.BreakerConfig{}, nil, nil)

	assert.Error(t, err)
}
