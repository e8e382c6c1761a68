package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock/internal/errors"
)

// messageResponse is the body of every plain success or error reply.
type messageResponse struct {
	Message string `json:"message"`
}

// statusCode maps the error taxonomy onto HTTP statuses. Storage failures
// and unclassified errors answer 500.
func statusCode(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeInvalidInput, errors.ErrorTypeInvalidState:
		return http.StatusBadRequest
	case errors.ErrorTypePermission:
		return http.StatusForbidden
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with the user-facing message and
// logs the failure when it is a system error rather than a caller error.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusCode(err)
	if errors.ShouldLogError(err) {
		h.log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"error", err.Error(),
		)
	}
	c.JSON(status, messageResponse{Message: errors.GetUserMessage(err)})
}

func (h *Handler) badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request payload."})
}
