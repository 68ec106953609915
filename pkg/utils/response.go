package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-hub/internal/pkg/logger"
	"agency-hub/pkg/errors"

	"go.uber.org/zap"
)

// Response unified response body. Code mirrors the HTTP status.
type Response struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Success 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Created 201 response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    errors.CodeCreated,
		Message: "created",
		Data:    data,
	})
}

// Error writes err with its own status code. Unknown errors become a bare 500; the
// underlying cause is only logged.
func Error(c *gin.Context, err error) {
	if appErr, ok := errors.As(err); ok {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.JSON(appErr.Code, Response{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{
		Code:    errors.CodeInternalError,
		Message: errors.ErrInternalError.Message,
	})
}

// ErrorWithCode custom error response
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ValidationError 400 with field-level messages
func ValidationError(c *gin.Context, fieldErrors []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    errors.CodeBadRequest,
		Message: errors.ErrValidationError.Message,
		Errors:  fieldErrors,
	})
}

// BindError reports a body that could not be decoded at all.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    errors.CodeBadRequest,
		Message: errors.ErrBadRequest.Message,
		Errors:  FormatValidationError(err),
	})
}
