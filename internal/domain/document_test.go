package domain_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
)

func TestNewDocument(t *testing.T) {
	doc, err := domain.NewDocument("rx.jpg", "image/jpg", []byte{0xFF, 0xD8}, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", doc.ContentType)

	_, err = domain.NewDocument("a.txt", "text/plain", []byte("x"), 0)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = domain.NewDocument("a.pdf", "application/pdf", nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	_, err = domain.NewDocument("a.pdf", "application/pdf", []byte("12345"), 4)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestParseDataURI(t *testing.T) {
	payload := []byte("%PDF-1.4 test")
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)

	doc, err := domain.ParseDataURI(uri, 0)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, payload, doc.Data)
}

func TestParseDataURI_Invalid(t *testing.T) {
	for _, uri := range []string{
		"application/pdf;base64,AAAA",
		"data:application/pdf;base64",
		"data:application/pdf,plain",
		"data:application/pdf;base64,!!!",
	} {
		_, err := domain.ParseDataURI(uri, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidDocument, uri)
	}

	_, err := domain.ParseDataURI("data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte("x")), 0)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileTypeFromExtension(t *testing.T) {
	ct, ok := domain.FileTypeFromExtension("report.PDF")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", ct)

	_, ok = domain.FileTypeFromExtension("notes.docx")
	assert.False(t, ok)
	_, ok = domain.FileTypeFromExtension("noext")
	assert.False(t, ok)
}
