package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips Markdown code fences from model text and checks that
// what remains is a single JSON object.
func ExtractJSON(text string) (json.RawMessage, error) {
	s := StripCodeFences(text)
	if !strings.HasPrefix(s, "{") || !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w (raw: %s)", ErrInvalidOutput, Truncate(text, 500))
	}
	return json.RawMessage(s), nil
}

// StripCodeFences removes a surrounding ```json ... ``` block if present.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Truncate shortens s to maxLen bytes for log and error output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
