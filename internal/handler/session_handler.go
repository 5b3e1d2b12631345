package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medexplain/internal/service"
)

// SessionHandler handles session lifecycle and list editing endpoints.
type SessionHandler struct {
	sessions service.SessionService
	errs     *ErrorHandler
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService, errs *ErrorHandler) *SessionHandler {
	return &SessionHandler{sessions: sessions, errs: errs}
}

// Create handles POST /api/v1/sessions
// @Summary Create a session
// @Description Start an empty session holding medication, food and report state
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=domain.Session}
// @Failure 500 {object} ErrorResponseBody
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondCreated(c, sess)
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.Session}
// @Failure 404 {object} ErrorResponseBody "Session not found or expired"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, sess)
}

// Delete handles DELETE /api/v1/sessions/:id
// @Summary Delete a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session deleted"})
}

// AddMedication handles POST /api/v1/sessions/:id/medications
// @Summary Add a medication manually
// @Description Blank dosage and frequency are stored as N/A. Duplicate names are kept.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body AddMedicationRequest true "Medication"
// @Success 201 {object} Response{data=domain.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/medications [post]
func (h *SessionHandler) AddMedication(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req AddMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "medication name is required")
		return
	}
	sess, err := h.sessions.AddMedication(c.Request.Context(), id, &service.AddMedicationInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
	})
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondCreated(c, sess)
}

// RemoveMedication handles DELETE /api/v1/sessions/:id/medications/:index
// @Summary Remove a medication by position
// @Tags sessions
// @Param id path string true "Session ID"
// @Param index path int true "Zero-based position"
// @Success 200 {object} Response{data=domain.Session}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/medications/{index} [delete]
func (h *SessionHandler) RemoveMedication(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}
	sess, err := h.sessions.RemoveMedication(c.Request.Context(), id, idx)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, sess)
}

// AddFood handles POST /api/v1/sessions/:id/foods
// @Summary Add a food
// @Description A food whose name is already listed is not added again.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body AddFoodRequest true "Food"
// @Success 201 {object} Response{data=AddFoodResponse} "Food added"
// @Success 200 {object} Response{data=AddFoodResponse} "Food already listed"
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/foods [post]
func (h *SessionHandler) AddFood(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "food name is required")
		return
	}
	sess, added, err := h.sessions.AddFood(c.Request.Context(), id, req.Name)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	resp := AddFoodResponse{Session: sess, Added: added}
	if !added {
		RespondOK(c, resp)
		return
	}
	RespondCreated(c, resp)
}

// RemoveFood handles DELETE /api/v1/sessions/:id/foods/:index
// @Summary Remove a food by position
// @Tags sessions
// @Param id path string true "Session ID"
// @Param index path int true "Zero-based position"
// @Success 200 {object} Response{data=domain.Session}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/foods/{index} [delete]
func (h *SessionHandler) RemoveFood(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}
	sess, err := h.sessions.RemoveFood(c.Request.Context(), id, idx)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, sess)
}
