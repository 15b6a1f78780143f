package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondSuccessWithCode(c, http.StatusOK, data, message)
}

func RespondSuccessWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service errors to responses. Server-side failures are attached to
// the gin context so the request logger records them.
func HandleServiceError(c *gin.Context, err error) {
	var providerErr *ProviderError

	switch {
	case IsValidationError(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found")
	case errors.As(err, &providerErr):
		_ = c.Error(err)
		// provider text is shown as-is so users can act on it (quota, bad key, unknown model)
		RespondError(c, http.StatusBadGateway, providerErr.Error())
	case errors.Is(err, ErrCommentBeforeRating):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrLedgerRowNotFound):
		_ = c.Error(err)
		RespondError(c, http.StatusConflict, "Feedback row no longer exists")
	case errors.Is(err, ErrLedgerTransport):
		_ = c.Error(err)
		RespondError(c, http.StatusBadGateway, "Could not save feedback, please try again")
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
