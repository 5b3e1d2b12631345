package handler_test

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
	"medexplain/internal/handler"
	"medexplain/internal/service"
	"medexplain/mocks"
)

var pdfBytes = []byte("%PDF-1.4 test prescription")

func newMedicationRouter(maxBytes int64) (*gin.Engine, *mocks.MockExtractionService) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewMedicationHandler(svc, handler.NewErrorHandler(nil), maxBytes)
	r := gin.New()
	r.POST("/medications/extract", h.Extract)
	r.POST("/sessions/:id/medications/extract", h.ExtractIntoSession)
	return r, svc
}

func isPDF(doc *domain.Document) bool {
	return doc != nil && doc.ContentType == "application/pdf" && string(doc.Data) == string(pdfBytes)
}

func TestMedicationHandler_Extract_Multipart(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)
	meds := []domain.Medication{{Name: "Amoxicillin", Dosage: "500mg", Frequency: "Three times daily"}}
	svc.On("Extract", mock.Anything, mock.MatchedBy(isPDF)).Return(meds, nil)

	w := serve(r, multipartRequest(t, "/medications/extract", "rx.pdf", "application/pdf", pdfBytes))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got handler.MedicationsResponse
	decode(t, w, &got)
	assert.Equal(t, meds, got.Medications)
}

func TestMedicationHandler_Extract_MultipartInfersTypeFromExtension(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)
	svc.On("Extract", mock.Anything, mock.MatchedBy(isPDF)).Return([]domain.Medication{}, nil)

	w := serve(r, multipartRequest(t, "/medications/extract", "rx.PDF", "application/octet-stream", pdfBytes))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMedicationHandler_Extract_DataURI(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)
	svc.On("Extract", mock.Anything, mock.MatchedBy(isPDF)).Return([]domain.Medication{}, nil)

	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
	w := serve(r, jsonRequest(t, http.MethodPost, "/medications/extract", map[string]string{"data_uri": uri}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMedicationHandler_Extract_MissingDocument(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)

	w := serve(r, jsonRequest(t, http.MethodPost, "/medications/extract", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_DOCUMENT", decode(t, w, nil).Error.Code)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestMedicationHandler_Extract_UnsupportedType(t *testing.T) {
	r, _ := newMedicationRouter(1 << 20)

	w := serve(r, multipartRequest(t, "/medications/extract", "notes.txt", "text/plain", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", decode(t, w, nil).Error.Code)
}

func TestMedicationHandler_Extract_TooLarge(t *testing.T) {
	r, _ := newMedicationRouter(8)

	w := serve(r, multipartRequest(t, "/medications/extract", "rx.pdf", "application/pdf", pdfBytes))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMedicationHandler_Extract_UpstreamFailure(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)
	svc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: provider timeout", domain.ErrExtractionFailed))

	w := serve(r, multipartRequest(t, "/medications/extract", "rx.pdf", "application/pdf", pdfBytes))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode(t, w, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "EXTRACTION_FAILED", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "timeout")
}

func TestMedicationHandler_ExtractIntoSession(t *testing.T) {
	r, svc := newMedicationRouter(1 << 20)
	sess := domain.NewSession(time.Now().UTC(), time.Hour)
	res := &service.ExtractionResult{Session: sess, Extracted: []domain.Medication{{Name: "Lisinopril"}}, Added: 1}
	svc.On("ExtractIntoSession", mock.Anything, sess.ID, mock.MatchedBy(isPDF)).Return(res, nil)

	w := serve(r, multipartRequest(t, "/sessions/"+sess.ID.String()+"/medications/extract", "rx.pdf", "application/pdf", pdfBytes))
	require.Equal(t, http.StatusOK, w.Code)

	var got handler.ExtractIntoSessionResponse
	decode(t, w, &got)
	assert.Equal(t, 1, got.Added)
}
