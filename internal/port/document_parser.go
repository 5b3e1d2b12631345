package port

import (
	"context"
	"encoding/json"
)

// ParseInput carries one request to an LLM provider.
// FileBytes is empty for text-only requests.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
	Prompt      string
	Task        string
}

// HasDocument reports whether the request carries a document payload.
func (in *ParseInput) HasDocument() bool {
	return len(in.FileBytes) > 0
}

// ParseOutput contains the raw JSON returned by an LLM provider.
type ParseOutput struct {
	StructuredData json.RawMessage
	ModelUsed      string
	Provider       string
}

// DocumentParser abstracts an LLM provider returning JSON.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
