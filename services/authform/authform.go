package authform

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/models"
	"termcompass/services/account"
	"termcompass/services/apperr"
	"termcompass/services/authmode"
	"termcompass/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAuthFormService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return utils.DefaultSessionTTL
}

func (s *DefaultAuthFormService) Open(ctx context.Context) (string, authmode.View, error) {
	c := authmode.New()
	id := uuid.New().String()
	if err := s.Forms.Save(ctx, sessionRepo.KindAuthForm, id, c.State(), s.ttl()); err != nil {
		return "", authmode.View{}, fmt.Errorf("failed to store auth form: %w", err)
	}
	utils.RecordEvent(sessionRepo.KindAuthForm, "open", nil)
	return id, c.View(), nil
}

func (s *DefaultAuthFormService) load(ctx context.Context, id string) (*authmode.Controller, error) {
	var st authmode.State
	if err := s.Forms.Load(ctx, sessionRepo.KindAuthForm, id, &st); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, apperr.NotFound("auth form not found or expired")
		}
		return nil, err
	}
	c, err := authmode.Restore(st)
	if err != nil {
		return nil, fmt.Errorf("stored auth form %s is corrupt: %w", id, err)
	}
	return c, nil
}

// apply runs one event under the form's lock. The state is saved even when the event fails, since
// a failed submit still raises the mismatch flag.
func (s *DefaultAuthFormService) apply(ctx context.Context, id, op string, event func(*authmode.Controller) (authmode.View, error)) (authmode.View, error) {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return authmode.View{}, err
	}
	defer unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return authmode.View{}, err
	}
	view, evErr := event(c)
	utils.RecordEvent(sessionRepo.KindAuthForm, op, evErr)
	if err := s.Forms.Save(ctx, sessionRepo.KindAuthForm, id, c.State(), s.ttl()); err != nil {
		return authmode.View{}, fmt.Errorf("failed to store auth form: %w", err)
	}
	return view, evErr
}

func (s *DefaultAuthFormService) Get(ctx context.Context, id string) (authmode.View, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return authmode.View{}, err
	}
	return c.View(), nil
}

func (s *DefaultAuthFormService) ToggleMode(ctx context.Context, id string) (authmode.View, error) {
	return s.apply(ctx, id, "toggleMode", func(c *authmode.Controller) (authmode.View, error) {
		return c.ToggleMode()
	})
}

func (s *DefaultAuthFormService) Agree(ctx context.Context, id string) (authmode.View, error) {
	return s.apply(ctx, id, "agree", func(c *authmode.Controller) (authmode.View, error) {
		return c.Agree()
	})
}

func (s *DefaultAuthFormService) Cancel(ctx context.Context, id string) (authmode.View, error) {
	return s.apply(ctx, id, "cancel", func(c *authmode.Controller) (authmode.View, error) {
		return c.Cancel()
	})
}

func (s *DefaultAuthFormService) SelectCategory(ctx context.Context, id, category string) (authmode.View, error) {
	return s.apply(ctx, id, "selectCategory", func(c *authmode.Controller) (authmode.View, error) {
		cat, err := models.ParseUserCategory(category)
		if err != nil {
			return c.View(), apperr.Validation(apperr.FieldError{Field: "category", Message: "must be one of: individual business"})
		}
		return c.SelectCategory(cat)
	})
}

func (s *DefaultAuthFormService) SetField(ctx context.Context, id string, field authmode.Field, value string) (authmode.View, error) {
	return s.apply(ctx, id, "setField", func(c *authmode.Controller) (authmode.View, error) {
		return c.SetField(field, value)
	})
}

func (s *DefaultAuthFormService) Submit(ctx context.Context, id string) (*models.AuthResponse, error) {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sub, err := c.Submit()
	utils.RecordEvent(sessionRepo.KindAuthForm, "submit", err)
	if err != nil {
		if saveErr := s.Forms.Save(ctx, sessionRepo.KindAuthForm, id, c.State(), s.ttl()); saveErr != nil {
			return nil, fmt.Errorf("failed to store auth form: %w", saveErr)
		}
		return nil, err
	}

	var resp *models.AuthResponse
	if sub.IsLogin {
		resp, err = s.Accounts.Authenticate(ctx, sub.Email, sub.Password)
	} else {
		resp, err = s.Accounts.Register(ctx, account.RegisterInput{
			Email:          sub.Email,
			Password:       sub.Password,
			Category:       sub.Category,
			DisplayName:    sub.AdditionalInfo,
			BusinessNumber: sub.BusinessNumber,
		})
	}
	if err != nil {
		s.Logger.Info("Auth form submission refused", zap.String("formID", id), zap.Bool("isLogin", sub.IsLogin), zap.Error(err))
		return nil, err
	}

	if err := s.Forms.Delete(ctx, sessionRepo.KindAuthForm, id); err != nil {
		s.Logger.Warn("Failed to discard auth form", zap.String("formID", id), zap.Error(err))
	}
	return resp, nil
}

func (s *DefaultAuthFormService) Close(ctx context.Context, id string) error {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()
	return s.Forms.Delete(ctx, sessionRepo.KindAuthForm, id)
}
