package utils

import "time"

// DefaultSessionTTL applies when no SESSION_TTL is configured.
const DefaultSessionTTL = 30 * time.Minute

// Gin context keys set by the auth and logging middleware.
const (
	CtxLogger    = "logger"
	CtxRequestID = "requestID"
	CtxAccountID = "accountID"
	CtxCategory  = "category"
	CtxEmail     = "email"
)
