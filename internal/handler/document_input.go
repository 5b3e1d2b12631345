package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medexplain/internal/domain"
)

// errMissingDocument is returned when neither a file nor a data URI was sent.
var errMissingDocument = errors.New("a file upload or data_uri is required")

// readDocument reads the request's document from a multipart "file" field or from a
// JSON body {"data_uri": "..."}. The bytes are held in memory only.
func readDocument(c *gin.Context, maxBytes int64) (*domain.Document, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return readMultipart(c, maxBytes)
	}

	if maxBytes > 0 {
		// base64 inflates by 4/3; leave room for the JSON wrapper.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes*4/3+4096)
	}
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrFileTooLarge
		}
		return nil, errMissingDocument
	}
	return domain.ParseDataURI(req.DataURI, maxBytes)
}

func readMultipart(c *gin.Context, maxBytes int64) (*domain.Document, error) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return nil, errMissingDocument
	}
	defer func() { _ = file.Close() }()

	if maxBytes > 0 && header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	reader := io.Reader(file)
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading upload: %v", domain.ErrInvalidDocument, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if ct, ok := domain.FileTypeFromExtension(header.Filename); ok {
			contentType = ct
		} else {
			contentType = http.DetectContentType(data)
		}
	}
	return domain.NewDocument(header.Filename, contentType, data, maxBytes)
}

// bindDocument reads the document or writes a 4xx response. It reports false when
// a response was already written.
func (h *ErrorHandler) bindDocument(c *gin.Context, maxBytes int64) (*domain.Document, bool) {
	doc, err := readDocument(c, maxBytes)
	if err != nil {
		if errors.Is(err, errMissingDocument) {
			RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT", err.Error())
			return nil, false
		}
		h.Handle(c, err)
		return nil, false
	}
	return doc, true
}
