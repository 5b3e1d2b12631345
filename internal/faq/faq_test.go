package faq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/faq"
)

func TestDefault(t *testing.T) {
	entries, err := faq.Default()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "What types of medical reports can I upload?", entries[0].Question)
	assert.Contains(t, entries[0].Answer, "PDF, JPG, and PNG")
	assert.Contains(t, entries[4].Answer, "emergency")
}

func TestParse_Errors(t *testing.T) {
	_, err := faq.Parse([]byte("entries: []"))
	assert.Error(t, err)

	_, err = faq.Parse([]byte("entries:\n  - question: only a question\n"))
	assert.Error(t, err)

	_, err = faq.Parse([]byte("entries: [unclosed"))
	assert.Error(t, err)
}
