package account

import (
	"context"

	accountRepo "termcompass/database/repository/account"
	"termcompass/models"

	"go.uber.org/zap"
)

// AccountService is the authentication collaborator the auth form hands its submissions to.
type AccountService interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error)
	// Authenticate checks credentials and issues a fresh token.
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// CheckToken confirms that token is the latest one issued to its account.
	CheckToken(ctx context.Context, token string) (*models.Account, error)
}

// RegisterInput is a validated signup.
type RegisterInput struct {
	Email          string              `json:"email" validate:"required,email"`
	Password       string              `json:"password" validate:"required"`
	Category       models.UserCategory `json:"category"`
	DisplayName    string              `json:"displayName"`
	BusinessNumber string              `json:"businessNumber" validate:"omitempty,bizno"`
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Repo   accountRepo.AccountRepository
	Logger *zap.Logger
}

func NewDefaultAccountService(repo accountRepo.AccountRepository, logger *zap.Logger) *DefaultAccountService {
	return &DefaultAccountService{Repo: repo, Logger: logger}
}
