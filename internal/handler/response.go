package handler

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Upstream failures carry one generic message per operation; the cause is only logged.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found or expired"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidDocument):
		return http.StatusBadRequest, "INVALID_DOCUMENT", "document could not be read"
	case errors.Is(err, domain.ErrInvalidMedication):
		return http.StatusBadRequest, "INVALID_MEDICATION", "medication name is required"
	case errors.Is(err, domain.ErrInvalidFood):
		return http.StatusBadRequest, "INVALID_FOOD", "food name is required"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound, "INDEX_OUT_OF_RANGE", "no entry at that position"
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusUnprocessableEntity, "MISSING_INPUT", "please add at least one medication and one food item"
	case errors.Is(err, domain.ErrMatrixTooLarge):
		return http.StatusUnprocessableEntity, "TOO_MANY_PAIRS", "too many medication and food combinations to check at once"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, "EXTRACTION_FAILED", "failed to extract medications from the prescription"
	case errors.Is(err, domain.ErrSummarizationFailed):
		return http.StatusBadGateway, "SUMMARIZATION_FAILED", "failed to summarize the report"
	case errors.Is(err, domain.ErrInteractionCheckFailed):
		return http.StatusBadGateway, "INTERACTION_CHECK_FAILED", "failed to check for interactions"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// ErrorHandler maps errors to responses, logging and reporting server-side failures.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates an ErrorHandler. A nil logger discards output.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Handle maps a domain error and sends the appropriate error response.
func (h *ErrorHandler) Handle(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID := middleware.GetRequestID(c)
		h.logger.Error("request failed",
			zap.String("request_id", requestID),
			zap.String("code", code),
			zap.Error(err))
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", requestID)
			scope.SetTag("error_code", code)
			sentry.CaptureException(err)
		})
	}
	RespondError(c, status, code, msg)
}
