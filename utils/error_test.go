package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"termcompass/services/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorMapsCodes(t *testing.T) {
	code, body := render(t, apperr.Unauthorized("business users only"))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "/", body.Redirect)
	assert.Equal(t, "business users only", body.Message)

	code, body = render(t, apperr.Validation(apperr.FieldError{Field: "email", Message: "is required"}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, apperr.CodeValidation, body.Code)
	assert.Equal(t, []apperr.FieldError{{Field: "email", Message: "is required"}}, body.Fields)

	code, _ = render(t, apperr.OutOfTurn("agree", "login"))
	assert.Equal(t, http.StatusConflict, code)

	code, _ = render(t, apperr.NotFound("gone"))
	assert.Equal(t, http.StatusNotFound, code)

	code, body = render(t, errors.New("mongo exploded"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body.Message, "mongo")
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
