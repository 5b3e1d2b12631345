package handler

import (
	"github.com/gin-gonic/gin"

	"medexplain/internal/service"
)

// MedicationHandler handles prescription extraction endpoints.
type MedicationHandler struct {
	extraction service.ExtractionService
	errs       *ErrorHandler
	maxBytes   int64
}

// NewMedicationHandler creates a new MedicationHandler. maxBytes limits uploads.
func NewMedicationHandler(extraction service.ExtractionService, errs *ErrorHandler, maxBytes int64) *MedicationHandler {
	return &MedicationHandler{extraction: extraction, errs: errs, maxBytes: maxBytes}
}

// Extract handles POST /api/v1/medications/extract
// @Summary Extract medications from a prescription
// @Description Accepts a multipart "file" field or a JSON data_uri. The document is not stored.
// @Tags medications
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Prescription (pdf, jpg, png)"
// @Param request body DocumentRequest false "Prescription as a data URI"
// @Success 200 {object} Response{data=MedicationsResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 413 {object} ErrorResponseBody
// @Failure 502 {object} ErrorResponseBody "Extraction failed"
// @Router /medications/extract [post]
func (h *MedicationHandler) Extract(c *gin.Context) {
	doc, ok := h.errs.bindDocument(c, h.maxBytes)
	if !ok {
		return
	}
	meds, err := h.extraction.Extract(c.Request.Context(), doc)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, MedicationsResponse{Medications: meds})
}

// ExtractIntoSession handles POST /api/v1/sessions/:id/medications/extract
// @Summary Extract medications into a session
// @Description Extracted medications are appended after the session's existing entries.
// @Tags sessions
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file false "Prescription (pdf, jpg, png)"
// @Success 200 {object} Response{data=ExtractIntoSessionResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 502 {object} ErrorResponseBody "Extraction failed"
// @Router /sessions/{id}/medications/extract [post]
func (h *MedicationHandler) ExtractIntoSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	doc, ok := h.errs.bindDocument(c, h.maxBytes)
	if !ok {
		return
	}
	res, err := h.extraction.ExtractIntoSession(c.Request.Context(), id, doc)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, ExtractIntoSessionResponse{
		Session:   res.Session,
		Extracted: res.Extracted,
		Added:     res.Added,
	})
}
