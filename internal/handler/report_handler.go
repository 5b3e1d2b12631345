package handler

import (
	"github.com/gin-gonic/gin"

	"medexplain/internal/service"
)

// ReportHandler handles lab report summarization endpoints.
type ReportHandler struct {
	reports  service.ReportService
	errs     *ErrorHandler
	maxBytes int64
}

// NewReportHandler creates a new ReportHandler. maxBytes limits uploads.
func NewReportHandler(reports service.ReportService, errs *ErrorHandler, maxBytes int64) *ReportHandler {
	return &ReportHandler{reports: reports, errs: errs, maxBytes: maxBytes}
}

// Summarize handles POST /api/v1/reports/summarize
// @Summary Summarize a lab report
// @Description Returns a plain-language summary, key findings and an overall status.
// @Tags reports
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Lab report (pdf, jpg, png)"
// @Param request body DocumentRequest false "Lab report as a data URI"
// @Success 200 {object} Response{data=domain.ReportAnalysis}
// @Failure 400 {object} ErrorResponseBody
// @Failure 502 {object} ErrorResponseBody "Summarization failed"
// @Router /reports/summarize [post]
func (h *ReportHandler) Summarize(c *gin.Context) {
	doc, ok := h.errs.bindDocument(c, h.maxBytes)
	if !ok {
		return
	}
	analysis, err := h.reports.Summarize(c.Request.Context(), doc)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, analysis)
}

// SummarizeIntoSession handles POST /api/v1/sessions/:id/report
// @Summary Summarize a lab report into a session
// @Description Replaces the session's stored summary. A failure leaves no summary.
// @Tags sessions
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file false "Lab report (pdf, jpg, png)"
// @Success 200 {object} Response{data=domain.ReportAnalysis}
// @Failure 404 {object} ErrorResponseBody
// @Failure 502 {object} ErrorResponseBody "Summarization failed"
// @Router /sessions/{id}/report [post]
func (h *ReportHandler) SummarizeIntoSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	doc, ok := h.errs.bindDocument(c, h.maxBytes)
	if !ok {
		return
	}
	analysis, err := h.reports.SummarizeIntoSession(c.Request.Context(), id, doc)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, analysis)
}

// SessionReport handles GET /api/v1/sessions/:id/report
// @Summary Get a session's stored report summary
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.ReportAnalysis}
// @Failure 404 {object} ErrorResponseBody "Session or summary not found"
// @Router /sessions/{id}/report [get]
func (h *ReportHandler) SessionReport(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	analysis, err := h.reports.SessionReport(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, analysis)
}
