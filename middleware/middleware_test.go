package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"termcompass/models"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChecker struct {
	checkFn func(ctx context.Context, token string) (*models.Account, error)
}

func (f *fakeChecker) CheckToken(ctx context.Context, token string) (*models.Account, error) {
	return f.checkFn(ctx, token)
}

func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"accountID": c.GetString(utils.CtxAccountID),
		"category":  c.Value(utils.CtxCategory),
	})
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/me", append(handlers, whoami)...)
	return r
}

func TestRequiredAuth(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(nil, false))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "garbage").Code)

	tok, err := utils.GenerateToken("acc-1", "a@b.co", models.CategoryBusiness, time.Hour)
	require.NoError(t, err)
	w := serve(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accountID":"acc-1","category":"business"}`, w.Body.String())
}

func TestOptionalAuthFallsBackToAnonymous(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(nil, true))
	w := serve(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accountID":"","category":null}`, w.Body.String())
}

func TestCheckerIsAuthoritative(t *testing.T) {
	tok, err := utils.GenerateToken("acc-1", "a@b.co", models.CategoryIndividual, time.Hour)
	require.NoError(t, err)

	revoked := &fakeChecker{checkFn: func(context.Context, string) (*models.Account, error) {
		return nil, errors.New("replaced")
	}}
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(JWTAuthMiddleware(revoked, false)), tok).Code)

	upgraded := &fakeChecker{checkFn: func(context.Context, string) (*models.Account, error) {
		return &models.Account{ID: "acc-1", Category: models.CategoryBusiness}, nil
	}}
	w := serve(newRouter(JWTAuthMiddleware(upgraded, false)), tok)
	assert.JSONEq(t, `{"accountID":"acc-1","category":"business"}`, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "").Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter()
	w := serve(r, "")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(requestIDHeader, "fixed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed", w.Header().Get(requestIDHeader))
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "not-an-ip")
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}
