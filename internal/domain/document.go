package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// NewDocument validates the content type and size of an uploaded document.
// A maxBytes of zero disables the size check.
func NewDocument(fileName, contentType string, data []byte, maxBytes int64) (*Document, error) {
	contentType = normalizeContentType(contentType)
	if _, ok := AllowedContentTypes[contentType]; !ok {
		return nil, ErrUnsupportedFileType
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}
	return &Document{FileName: fileName, ContentType: contentType, Data: data}, nil
}

// ParseDataURI decodes a "data:<mimetype>;base64,<data>" URI into a Document.
func ParseDataURI(uri string, maxBytes int64) (*Document, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDocument)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDocument)
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrInvalidDocument)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64: %v", ErrInvalidDocument, err)
	}
	return NewDocument("", contentType, data, maxBytes)
}

// FileTypeFromExtension resolves a file name's extension to an allowed content type.
func FileTypeFromExtension(fileName string) (string, bool) {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return "", false
	}
	ft, ok := AllowedExtensions[strings.ToLower(fileName[idx+1:])]
	if !ok {
		return "", false
	}
	return AllowedFileTypes[ft], true
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
