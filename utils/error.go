package utils

import (
	"errors"
	"net/http"

	"termcompass/services/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message  string              `json:"message"`
	Details  string              `json:"details,omitempty"`
	Code     string              `json:"code,omitempty"`
	Fields   []apperr.FieldError `json:"fields,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case apperr.CodeUnauthorized:
		return http.StatusForbidden
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodeValidation:
		return http.StatusUnprocessableEntity
	case apperr.CodeOutOfTurn:
		return http.StatusConflict
	case apperr.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// WriteError renders err. Unauthorized errors carry a redirect to the landing page so the client
// can send the user home.
func WriteError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		GetLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	resp := ErrorResponse{Message: err.Error(), Code: code, Fields: apperr.FieldsOf(err)}
	var e *apperr.Error
	if errors.As(err, &e) {
		resp.Message = e.Message
	}
	if code == apperr.CodeUnauthorized {
		resp.Redirect = "/"
	}
	c.JSON(status, resp)
}
