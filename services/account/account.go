package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	accountRepo "termcompass/database/repository/account"
	"termcompass/models"
	"termcompass/services/apperr"
	"termcompass/services/validation"
	"termcompass/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = apperr.Unauthenticated("invalid email or password")

func (s *DefaultAccountService) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	if !in.Category.Valid() {
		return nil, apperr.Validation(apperr.FieldError{Field: "category", Message: "is invalid"})
	}
	if in.Category.IsBusiness() && in.BusinessNumber == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "businessNumber", Message: "is required"})
	}
	in.Email = strings.TrimSpace(in.Email)
	if !in.Category.IsBusiness() {
		in.BusinessNumber = ""
	}
	if fields := validation.Struct(in); len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := &models.Account{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(in.Email),
		PasswordHash:   string(hash),
		Category:       in.Category,
		DisplayName:    in.DisplayName,
		BusinessNumber: in.BusinessNumber,
	}

	if err := s.Repo.Create(ctx, acc); err != nil {
		if errors.Is(err, accountRepo.ErrDuplicateEmail) {
			return nil, apperr.Validation(apperr.FieldError{Field: "email", Message: "is already registered"})
		}
		s.Logger.Error("Register: failed to create account", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.Logger.Info("Account registered", zap.String("accountID", acc.ID), zap.String("category", string(acc.Category)))
	return s.issue(ctx, acc)
}

func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	acc, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, accountRepo.ErrAccountNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		s.Logger.Debug("Authenticate: password mismatch", zap.String("accountID", acc.ID))
		return nil, errBadCredentials
	}
	return s.issue(ctx, acc)
}

// issue signs a token and records its hash so older tokens stop working.
func (s *DefaultAccountService) issue(ctx context.Context, acc *models.Account) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(acc.ID, acc.Email, acc.Category, utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.SetTokenHash(ctx, acc.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &models.AuthResponse{ID: acc.ID, Token: token, Email: acc.Email, Category: acc.Category}, nil
}

func (s *DefaultAccountService) CheckToken(ctx context.Context, token string) (*models.Account, error) {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return nil, apperr.Unauthenticated("invalid token")
	}
	acc, err := s.Repo.GetByTokenHash(ctx, utils.HashToken(token))
	if errors.Is(err, accountRepo.ErrAccountNotFound) {
		return nil, apperr.Unauthenticated("token has been replaced or revoked")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if acc.ID != claims.Subject {
		return nil, apperr.Unauthenticated("token mismatch")
	}
	return acc, nil
}
