package handler

import (
	"github.com/gin-gonic/gin"

	"medexplain/internal/faq"
)

// FAQHandler serves the static FAQ entries.
type FAQHandler struct {
	entries []faq.Entry
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(entries []faq.Entry) *FAQHandler {
	return &FAQHandler{entries: entries}
}

// List handles GET /api/v1/faq
// @Summary List FAQ entries
// @Tags faq
// @Produce json
// @Success 200 {object} Response{data=[]faq.Entry}
// @Router /faq [get]
func (h *FAQHandler) List(c *gin.Context) {
	RespondOK(c, h.entries)
}
