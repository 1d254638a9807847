package accountRepo

import (
	"context"
	"errors"

	"termcompass/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("an account with this email already exists")
)

// AccountRepository defines methods for account data access.
type AccountRepository interface {
	// Create inserts a new account. A taken email yields ErrDuplicateEmail.
	Create(ctx context.Context, acc *models.Account) error
	// GetByEmail returns ErrAccountNotFound when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// GetByTokenHash resolves the account owning an issued token.
	GetByTokenHash(ctx context.Context, hash string) (*models.Account, error)
	// SetTokenHash records the hash of the latest issued token.
	SetTokenHash(ctx context.Context, id, hash string) error
}
