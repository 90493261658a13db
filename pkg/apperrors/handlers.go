package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every error reply.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// Debug controls whether 5xx responses keep the underlying error message.
// Set once from config at startup; production keeps it false.
var Debug bool

// HandleError converts any error into a JSON error response. Non-AppError
// values become 500s; in production their message is genericized.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error", "error", err.Error(), "path", c.Request.URL.Path)
		if !Debug {
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
