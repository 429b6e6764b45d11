package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err with the status its error code maps to, and
// records it on the context for the error-logging middleware.
func RespondError(c *gin.Context, err error) {
	c.Error(err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
