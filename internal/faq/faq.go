// Package faq serves the static help content shown beside the tools.
package faq

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultContent []byte

// Entry is one question and answer.
type Entry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Parse decodes FAQ entries from YAML. Every entry needs a question and an answer.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing faq: %w", err)
	}
	if len(doc.Entries) == 0 {
		return nil, errors.New("faq has no entries")
	}
	for i, e := range doc.Entries {
		if e.Question == "" || e.Answer == "" {
			return nil, fmt.Errorf("faq entry %d is missing a question or answer", i)
		}
	}
	return doc.Entries, nil
}

// Default returns the embedded FAQ entries.
func Default() ([]Entry, error) {
	return Parse(defaultContent)
}
