package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lms-server/internal/infrastructure/logger"
	"lms-server/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError writes a platform error to the response, logging it once.
func HandleError(c *gin.Context, err error) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		platformerrors.LogError(logger.GetLogger(), platformErr)
		c.JSON(platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), ErrorResponse{
			Code:      platformErr.UUID,
			Error:     string(platformErr.Type),
			Message:   platformErr.Message,
			RequestID: platformErr.RequestID,
		})
		return
	}

	log := logger.GetLogger()
	log.Error().Err(err).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "internal",
		Error:   string(platformerrors.ErrorTypeInternal),
		Message: "an unexpected error occurred",
	})
}

// HandleNewError builds a platform error and writes it to the response.
func HandleNewError(c *gin.Context, layer platformerrors.Layer, errorType platformerrors.ErrorType, message string, err error, uuid string) {
	HandleError(c, platformerrors.NewError(c.Request.Context(), layer, errorType, message, err, uuid))
}
