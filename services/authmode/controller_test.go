package authmode

import (
	"errors"
	"testing"

	"termcompass/models"
	"termcompass/services/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupForm(t *testing.T) *Controller {
	t.Helper()
	c := New()
	_, err := c.ToggleMode()
	require.NoError(t, err)
	_, err = c.Agree()
	require.NoError(t, err)
	return c
}

func TestNewStartsInLogin(t *testing.T) {
	v := New().View()
	assert.Equal(t, ModeLogin, v.Mode)
	assert.True(t, v.IsLogin)
	assert.False(t, v.ShowTerms)
	assert.Equal(t, models.CategoryIndividual, v.Category)
	assert.Equal(t, []Field{FieldEmail, FieldPassword}, v.RequiredFields)
}

func TestToggleFromLoginLandsOnTermsGate(t *testing.T) {
	c := New()
	v, err := c.ToggleMode()
	require.NoError(t, err)
	assert.Equal(t, ModeSignupTermsGate, v.Mode)
	assert.True(t, v.ShowTerms)
	assert.False(t, v.IsLogin)
}

func TestAgreeOpensSignupForm(t *testing.T) {
	c := New()
	_, _ = c.ToggleMode()
	v, err := c.Agree()
	require.NoError(t, err)
	assert.Equal(t, ModeSignupForm, v.Mode)
	assert.False(t, v.ShowTerms)
}

func TestCancelReturnsToLogin(t *testing.T) {
	c := New()
	_, _ = c.ToggleMode()
	v, err := c.Cancel()
	require.NoError(t, err)
	assert.Equal(t, ModeLogin, v.Mode)
	assert.True(t, v.IsLogin)
	assert.False(t, v.ShowTerms)
}

func TestToggleFromSignupBypassesTermsGate(t *testing.T) {
	c := signupForm(t)
	v, err := c.ToggleMode()
	require.NoError(t, err)
	assert.Equal(t, ModeLogin, v.Mode)
}

func TestTermsGateBlocksTheForm(t *testing.T) {
	c := New()
	_, _ = c.ToggleMode()

	ops := map[string]func() error{
		"toggle":   func() error { _, err := c.ToggleMode(); return err },
		"email":    func() error { _, err := c.SetEmail("a@b.co"); return err },
		"password": func() error { _, err := c.SetPassword("x"); return err },
		"category": func() error { _, err := c.SelectCategory(models.CategoryBusiness); return err },
		"submit":   func() error { _, err := c.Submit(); return err },
	}
	for name, op := range ops {
		assert.True(t, errors.Is(op(), apperr.ErrOutOfTurn), name)
	}
	assert.Equal(t, ModeSignupTermsGate, c.Mode())
}

func TestAgreeAndCancelOutsideGateAreOutOfTurn(t *testing.T) {
	c := New()
	_, err := c.Agree()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.Cancel()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
}

func TestMismatchHiddenUntilConfirmationTouched(t *testing.T) {
	c := signupForm(t)

	v, err := c.SetPassword("secret1")
	require.NoError(t, err)
	assert.False(t, v.PasswordMismatch)

	v, err = c.SetPasswordConfirm("s")
	require.NoError(t, err)
	assert.True(t, v.PasswordMismatch)

	v, _ = c.SetPasswordConfirm("secret1")
	assert.False(t, v.PasswordMismatch)

	v, _ = c.SetPassword("secret12")
	assert.True(t, v.PasswordMismatch)

	v, _ = c.SetPassword("secret1")
	assert.False(t, v.PasswordMismatch)
}

func TestMismatchBlocksSubmitAndPersists(t *testing.T) {
	c := signupForm(t)
	_, _ = c.SetAdditionalInfo("Hong Gildong")
	_, _ = c.SetEmail("hong@example.com")
	_, _ = c.SetPassword("secret1")
	_, _ = c.SetPasswordConfirm("secret2")

	sub, err := c.Submit()
	require.Error(t, err)
	assert.Equal(t, Submission{}, sub)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
	assert.Equal(t, "passwordConfirm", apperr.FieldsOf(err)[0].Field)
	assert.True(t, c.View().PasswordMismatch)

	_, _ = c.SetPasswordConfirm("secret1")
	assert.False(t, c.View().PasswordMismatch)
	sub, err = c.Submit()
	require.NoError(t, err)
	assert.Equal(t, Submission{
		Email:          "hong@example.com",
		Password:       "secret1",
		Category:       models.CategoryIndividual,
		AdditionalInfo: "Hong Gildong",
	}, sub)
}

func TestBusinessSignupRequiresBusinessNumber(t *testing.T) {
	c := signupForm(t)
	v, err := c.SelectCategory(models.CategoryBusiness)
	require.NoError(t, err)
	assert.Equal(t, "companyName", v.AdditionalInfoLabel)
	assert.Contains(t, v.RequiredFields, FieldBusinessNumber)

	_, _ = c.SetAdditionalInfo("Example Corp")
	_, _ = c.SetEmail("legal@example.com")
	_, _ = c.SetPassword("pw")
	_, _ = c.SetPasswordConfirm("pw")

	_, err = c.Submit()
	require.Error(t, err)
	fields := apperr.FieldsOf(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "businessNumber", fields[0].Field)

	_, err = c.SetBusinessNumber("123-45-67890")
	require.NoError(t, err)
	sub, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBusiness, sub.Category)
	assert.Equal(t, "123-45-67890", sub.BusinessNumber)
	assert.False(t, sub.IsLogin)
}

func TestSignupReportsEveryMissingField(t *testing.T) {
	c := signupForm(t)
	_, err := c.Submit()
	require.Error(t, err)

	var names []string
	for _, f := range apperr.FieldsOf(err) {
		names = append(names, f.Field)
	}
	assert.Equal(t, []string{"additionalInfo", "email", "password", "passwordConfirm"}, names)
}

func TestLoginSubmit(t *testing.T) {
	c := New()
	_, err := c.Submit()
	require.Error(t, err)
	assert.Len(t, apperr.FieldsOf(err), 2)

	_, _ = c.SetEmail(" user@example.com ")
	_, _ = c.SetPassword("pw")
	sub, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, Submission{Email: "user@example.com", Password: "pw", Category: models.CategoryIndividual, IsLogin: true}, sub)
}

func TestLeavingSignupDiscardsSignupInputs(t *testing.T) {
	c := signupForm(t)
	_, _ = c.SelectCategory(models.CategoryBusiness)
	_, _ = c.SetEmail("a@b.co")
	_, _ = c.SetPassword("pw")
	_, _ = c.SetPasswordConfirm("nope")
	_, _ = c.SetAdditionalInfo("Acme")
	_, _ = c.SetBusinessNumber("1234567890")

	_, err := c.ToggleMode()
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, "a@b.co", st.Email)
	assert.Equal(t, "pw", st.Password)
	assert.Empty(t, st.PasswordConfirm)
	assert.False(t, st.ConfirmTouched)
	assert.Empty(t, st.AdditionalInfo)
	assert.Empty(t, st.BusinessNumber)

	// Coming back through the gate starts with a fresh confirmation.
	_, _ = c.ToggleMode()
	_, _ = c.Agree()
	assert.False(t, c.View().PasswordMismatch)
}

func TestSignupOnlyFieldsAreOutOfTurnInLogin(t *testing.T) {
	c := New()
	_, err := c.SetPasswordConfirm("x")
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.SetAdditionalInfo("x")
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.SetField("nickname", "x")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestIndividualCannotSetBusinessNumber(t *testing.T) {
	c := signupForm(t)
	_, err := c.SetBusinessNumber("123-45-67890")
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
}

func TestLoginNeverShowsTerms(t *testing.T) {
	c := signupForm(t)
	_, _ = c.ToggleMode()
	v := c.View()
	assert.True(t, v.IsLogin)
	assert.False(t, v.ShowTerms)
}

func TestRestoreRoundTrip(t *testing.T) {
	c := signupForm(t)
	_, _ = c.SetPassword("a")
	_, _ = c.SetPasswordConfirm("b")

	restored, err := Restore(c.State())
	require.NoError(t, err)
	assert.Equal(t, c.View(), restored.View())

	_, err = Restore(State{Mode: Mode(42), Category: models.CategoryIndividual})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
