package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medexplain/internal/export"
	"medexplain/internal/service"
)

// InteractionHandler handles food-medication interaction endpoints.
type InteractionHandler struct {
	interactions service.InteractionService
	sessions     service.SessionService
	errs         *ErrorHandler
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(interactions service.InteractionService, sessions service.SessionService, errs *ErrorHandler) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, sessions: sessions, errs: errs}
}

// Check handles POST /api/v1/interactions/check
// @Summary Check interactions for ad-hoc lists
// @Description Checks every medication against every food, one request per pair.
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body CheckInteractionsRequest true "Medication and food names"
// @Success 200 {object} Response{data=InteractionsResponse}
// @Failure 422 {object} ErrorResponseBody "Missing medications or foods"
// @Failure 502 {object} ErrorResponseBody "Interaction check failed"
// @Router /interactions/check [post]
func (h *InteractionHandler) Check(c *gin.Context) {
	var req CheckInteractionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "medications and foods must be lists of names")
		return
	}
	result, err := h.interactions.Check(c.Request.Context(), req.Medications, req.Foods)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, newInteractionsResponse(result))
}

// CheckSession handles POST /api/v1/sessions/:id/interactions/check
// @Summary Check interactions for a session
// @Description Replaces the session's stored interactions with a fresh run.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=InteractionsResponse}
// @Failure 404 {object} ErrorResponseBody
// @Failure 422 {object} ErrorResponseBody "Missing medications or foods"
// @Failure 502 {object} ErrorResponseBody "Interaction check failed"
// @Router /sessions/{id}/interactions/check [post]
func (h *InteractionHandler) CheckSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	result, err := h.interactions.CheckSession(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	RespondOK(c, newInteractionsResponse(result))
}

// Export handles GET /api/v1/sessions/:id/interactions/export
// @Summary Export a session's interactions
// @Tags sessions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/interactions/export [get]
func (h *InteractionHandler) Export(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, sess.Interactions); err != nil {
		h.errs.Handle(c, fmt.Errorf("exporting interactions: %w", err))
		return
	}

	filename := export.BuildFilename(string(format), time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
