package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
	"medexplain/internal/handler"
	"medexplain/mocks"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func newReportRouter() (*gin.Engine, *mocks.MockReportService) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc, handler.NewErrorHandler(nil), 1<<20)
	r := gin.New()
	r.POST("/reports/summarize", h.Summarize)
	r.POST("/sessions/:id/report", h.SummarizeIntoSession)
	r.GET("/sessions/:id/report", h.SessionReport)
	return r, svc
}

func TestReportHandler_Summarize(t *testing.T) {
	r, svc := newReportRouter()
	analysis := domain.AnalyzeReport(&domain.ReportSummary{
		SummaryText: "Your results look mostly fine.",
		Findings:    []domain.Finding{{Term: "LDL", Explanation: "Bad cholesterol", Status: domain.FindingStatusHigh}},
	})
	svc.On("Summarize", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(analysis, nil)

	w := serve(r, multipartRequest(t, "/reports/summarize", "labs.png", "image/png", pngBytes))
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	decode(t, w, &got)
	assert.Equal(t, "attention_needed", got["overall_status"])
	summary := got["summary"].(map[string]interface{})
	assert.Equal(t, "Your results look mostly fine.", summary["summary"])
	assert.Len(t, summary["key_findings"], 1)
}

func TestReportHandler_Summarize_Failure(t *testing.T) {
	r, svc := newReportRouter()
	svc.On("Summarize", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: invalid output", domain.ErrSummarizationFailed))

	w := serve(r, multipartRequest(t, "/reports/summarize", "labs.png", "image/png", pngBytes))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "SUMMARIZATION_FAILED", decode(t, w, nil).Error.Code)
}

func TestReportHandler_SummarizeIntoSession(t *testing.T) {
	r, svc := newReportRouter()
	id := uuid.New()
	svc.On("SummarizeIntoSession", mock.Anything, id, mock.Anything).
		Return(domain.AnalyzeReport(&domain.ReportSummary{SummaryText: "ok"}), nil)

	w := serve(r, multipartRequest(t, "/sessions/"+id.String()+"/report", "labs.png", "image/png", pngBytes))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_SessionReport_None(t *testing.T) {
	r, svc := newReportRouter()
	id := uuid.New()
	svc.On("SessionReport", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := serve(r, jsonRequest(t, http.MethodGet, "/sessions/"+id.String()+"/report", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
