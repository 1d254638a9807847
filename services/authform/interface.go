package authform

import (
	"context"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/models"
	"termcompass/services/account"
	"termcompass/services/authmode"
	"termcompass/utils"

	"go.uber.org/zap"
)

// AuthFormService hosts login/signup forms between keystrokes. Forms hold raw passwords, so the
// store must never leave the process.
type AuthFormService interface {
	Open(ctx context.Context) (string, authmode.View, error)
	Get(ctx context.Context, formID string) (authmode.View, error)
	ToggleMode(ctx context.Context, formID string) (authmode.View, error)
	Agree(ctx context.Context, formID string) (authmode.View, error)
	Cancel(ctx context.Context, formID string) (authmode.View, error)
	SelectCategory(ctx context.Context, formID, category string) (authmode.View, error)
	SetField(ctx context.Context, formID string, field authmode.Field, value string) (authmode.View, error)
	// Submit validates the form and, when it passes, signs the user in or up. The form is discarded
	// after a successful sign-in.
	Submit(ctx context.Context, formID string) (*models.AuthResponse, error)
	Close(ctx context.Context, formID string) error
}

// DefaultAuthFormService is the production implementation.
type DefaultAuthFormService struct {
	Forms    *sessionRepo.MemorySessionRepo
	Accounts account.AccountService
	Locks    utils.Locker
	TTL      time.Duration
	Logger   *zap.Logger
}
