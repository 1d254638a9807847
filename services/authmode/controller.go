package authmode

import (
	"fmt"
	"strings"

	"termcompass/models"
	"termcompass/services/apperr"
	"termcompass/services/validation"
)

// Mode is the screen the auth form is showing.
type Mode int

const (
	ModeLogin Mode = iota + 1
	ModeSignupTermsGate
	ModeSignupForm
)

var modeNames = map[Mode]string{
	ModeLogin:           "login",
	ModeSignupTermsGate: "signupTermsGate",
	ModeSignupForm:      "signupForm",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("invalid auth mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	for mode, name := range modeNames {
		if name == string(b) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown auth mode %q", string(b))
}

// Field names a form input.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldPasswordConfirm Field = "passwordConfirm"
	FieldAdditionalInfo  Field = "additionalInfo"
	FieldBusinessNumber  Field = "businessNumber"
)

// Submission is handed to the authentication collaborator after a successful submit.
type Submission struct {
	Email          string              `json:"email"`
	Password       string              `json:"-"`
	Category       models.UserCategory `json:"category"`
	AdditionalInfo string              `json:"additionalInfo,omitempty"`
	BusinessNumber string              `json:"businessNumber,omitempty"`
	IsLogin        bool                `json:"isLogin"`
}

// State is the complete controller state, used to park a form between events.
type State struct {
	Mode            Mode                `json:"mode"`
	Category        models.UserCategory `json:"category"`
	Email           string              `json:"email"`
	Password        string              `json:"password"`
	PasswordConfirm string              `json:"passwordConfirm"`
	AdditionalInfo  string              `json:"additionalInfo"`
	BusinessNumber  string              `json:"businessNumber"`
	ConfirmTouched  bool                `json:"confirmTouched"`
	Mismatch        bool                `json:"mismatch"`
}

// View is what a renderer needs. Password values are never included.
type View struct {
	Mode                Mode                `json:"mode"`
	IsLogin             bool                `json:"isLogin"`
	ShowTerms           bool                `json:"showTerms"`
	Category            models.UserCategory `json:"category"`
	Email               string              `json:"email"`
	AdditionalInfo      string              `json:"additionalInfo,omitempty"`
	AdditionalInfoLabel string              `json:"additionalInfoLabel,omitempty"`
	BusinessNumber      string              `json:"businessNumber,omitempty"`
	PasswordMismatch    bool                `json:"passwordMismatch"`
	RequiredFields      []Field             `json:"requiredFields"`
}

// Controller owns the login/signup toggle, the terms agreement gate in front of signup, and the
// signup cross-field checks. It performs no I/O.
type Controller struct {
	st State
}

// New returns a controller in login mode with the individual category selected.
func New() *Controller {
	return &Controller{st: State{Mode: ModeLogin, Category: models.CategoryIndividual}}
}

// Restore rebuilds a controller from a previously captured State.
func Restore(st State) (*Controller, error) {
	if _, ok := modeNames[st.Mode]; !ok {
		return nil, apperr.Validation(apperr.FieldError{Field: "mode", Message: "is invalid"})
	}
	if !st.Category.Valid() {
		return nil, apperr.Validation(apperr.FieldError{Field: "category", Message: "is invalid"})
	}
	return &Controller{st: st}, nil
}

func (c *Controller) State() State {
	return c.st
}

func (c *Controller) Mode() Mode {
	return c.st.Mode
}

// PasswordMismatch is the visible mismatch flag: it only shows once the confirmation field has
// been typed into.
func (c *Controller) PasswordMismatch() bool {
	return c.st.Mode == ModeSignupForm && c.st.ConfirmTouched && c.st.Mismatch
}

func (c *Controller) View() View {
	v := View{
		Mode:             c.st.Mode,
		IsLogin:          c.st.Mode == ModeLogin,
		ShowTerms:        c.st.Mode == ModeSignupTermsGate,
		Category:         c.st.Category,
		Email:            c.st.Email,
		PasswordMismatch: c.PasswordMismatch(),
		RequiredFields:   c.requiredFields(),
	}
	if c.st.Mode == ModeSignupForm {
		v.AdditionalInfo = c.st.AdditionalInfo
		v.AdditionalInfoLabel = "name"
		if c.st.Category.IsBusiness() {
			v.AdditionalInfoLabel = "companyName"
			v.BusinessNumber = c.st.BusinessNumber
		}
	}
	return v
}

func (c *Controller) requiredFields() []Field {
	switch c.st.Mode {
	case ModeLogin:
		return []Field{FieldEmail, FieldPassword}
	case ModeSignupForm:
		fields := []Field{FieldAdditionalInfo}
		if c.st.Category.IsBusiness() {
			fields = append(fields, FieldBusinessNumber)
		}
		return append(fields, FieldEmail, FieldPassword, FieldPasswordConfirm)
	}
	return []Field{}
}

func (c *Controller) outOfTurn(op string) error {
	return apperr.OutOfTurn(op, c.st.Mode.String())
}

// discardSignup drops the inputs that only exist on the signup form.
func (c *Controller) discardSignup() {
	c.st.PasswordConfirm = ""
	c.st.ConfirmTouched = false
	c.st.Mismatch = false
	c.st.AdditionalInfo = ""
	c.st.BusinessNumber = ""
}

// ToggleMode switches between login and signup. Entering signup always goes through the terms
// gate; leaving signup returns straight to login.
func (c *Controller) ToggleMode() (View, error) {
	switch c.st.Mode {
	case ModeLogin:
		c.st.Mode = ModeSignupTermsGate
	case ModeSignupForm:
		c.discardSignup()
		c.st.Mode = ModeLogin
	default:
		return c.View(), c.outOfTurn("toggleMode")
	}
	return c.View(), nil
}

// Agree accepts the terms and opens the signup form.
func (c *Controller) Agree() (View, error) {
	if c.st.Mode != ModeSignupTermsGate {
		return c.View(), c.outOfTurn("agree")
	}
	c.st.Mode = ModeSignupForm
	return c.View(), nil
}

// Cancel declines the terms and returns to login.
func (c *Controller) Cancel() (View, error) {
	if c.st.Mode != ModeSignupTermsGate {
		return c.View(), c.outOfTurn("cancel")
	}
	c.discardSignup()
	c.st.Mode = ModeLogin
	return c.View(), nil
}

func (c *Controller) formVisible(op string) error {
	if c.st.Mode == ModeSignupTermsGate {
		return c.outOfTurn(op)
	}
	return nil
}

func (c *Controller) SelectCategory(cat models.UserCategory) (View, error) {
	if err := c.formVisible("selectCategory"); err != nil {
		return c.View(), err
	}
	if !cat.Valid() {
		return c.View(), apperr.Validation(apperr.FieldError{Field: "category", Message: "must be one of: individual business"})
	}
	c.st.Category = cat
	return c.View(), nil
}

func (c *Controller) SetEmail(v string) (View, error) {
	if err := c.formVisible("setEmail"); err != nil {
		return c.View(), err
	}
	c.st.Email = v
	return c.View(), nil
}

// SetPassword updates the password and recomputes the mismatch against the confirmation.
func (c *Controller) SetPassword(v string) (View, error) {
	if err := c.formVisible("setPassword"); err != nil {
		return c.View(), err
	}
	c.st.Password = v
	c.st.Mismatch = !validation.PasswordsMatch(v, c.st.PasswordConfirm)
	return c.View(), nil
}

// SetPasswordConfirm updates the confirmation, marks it touched and recomputes the mismatch.
func (c *Controller) SetPasswordConfirm(v string) (View, error) {
	if c.st.Mode != ModeSignupForm {
		return c.View(), c.outOfTurn("setPasswordConfirm")
	}
	c.st.PasswordConfirm = v
	c.st.ConfirmTouched = true
	c.st.Mismatch = !validation.PasswordsMatch(c.st.Password, v)
	return c.View(), nil
}

func (c *Controller) SetAdditionalInfo(v string) (View, error) {
	if c.st.Mode != ModeSignupForm {
		return c.View(), c.outOfTurn("setAdditionalInfo")
	}
	c.st.AdditionalInfo = v
	return c.View(), nil
}

func (c *Controller) SetBusinessNumber(v string) (View, error) {
	if c.st.Mode != ModeSignupForm || !c.st.Category.IsBusiness() {
		return c.View(), c.outOfTurn("setBusinessNumber")
	}
	c.st.BusinessNumber = v
	return c.View(), nil
}

// SetField dispatches a keystroke-level update by field name.
func (c *Controller) SetField(f Field, v string) (View, error) {
	switch f {
	case FieldEmail:
		return c.SetEmail(v)
	case FieldPassword:
		return c.SetPassword(v)
	case FieldPasswordConfirm:
		return c.SetPasswordConfirm(v)
	case FieldAdditionalInfo:
		return c.SetAdditionalInfo(v)
	case FieldBusinessNumber:
		return c.SetBusinessNumber(v)
	}
	return c.View(), apperr.Validation(apperr.FieldError{Field: "field", Message: fmt.Sprintf("unknown field %q", f)})
}

// Submit validates the form for the current mode. On failure nothing is handed on and the
// mismatch flag, if set, stays set until corrected.
func (c *Controller) Submit() (Submission, error) {
	switch c.st.Mode {
	case ModeLogin:
		if fields := c.validateLogin(); len(fields) > 0 {
			return Submission{}, apperr.Validation(fields...)
		}
		return Submission{
			Email:    strings.TrimSpace(c.st.Email),
			Password: c.st.Password,
			Category: c.st.Category,
			IsLogin:  true,
		}, nil
	case ModeSignupForm:
		if !validation.PasswordsMatch(c.st.Password, c.st.PasswordConfirm) {
			c.st.Mismatch = true
			return Submission{}, apperr.Validation(apperr.FieldError{Field: string(FieldPasswordConfirm), Message: "does not match the password"})
		}
		if fields := c.validateSignup(); len(fields) > 0 {
			return Submission{}, apperr.Validation(fields...)
		}
		sub := Submission{
			Email:          strings.TrimSpace(c.st.Email),
			Password:       c.st.Password,
			Category:       c.st.Category,
			AdditionalInfo: strings.TrimSpace(c.st.AdditionalInfo),
		}
		if c.st.Category.IsBusiness() {
			sub.BusinessNumber = strings.TrimSpace(c.st.BusinessNumber)
		}
		return sub, nil
	}
	return Submission{}, c.outOfTurn("submit")
}

func (c *Controller) validateLogin() []apperr.FieldError {
	var fields []apperr.FieldError
	if !validation.ValidEmail(c.st.Email) {
		fields = append(fields, apperr.FieldError{Field: string(FieldEmail), Message: "must be a valid email address"})
	}
	if c.st.Password == "" {
		fields = append(fields, apperr.FieldError{Field: string(FieldPassword), Message: "is required"})
	}
	return fields
}

func (c *Controller) validateSignup() []apperr.FieldError {
	var fields []apperr.FieldError
	if !validation.NonEmptyTrimmed(c.st.AdditionalInfo) {
		fields = append(fields, apperr.FieldError{Field: string(FieldAdditionalInfo), Message: "is required"})
	}
	if c.st.Category.IsBusiness() && !validation.ValidBusinessNumber(c.st.BusinessNumber) {
		fields = append(fields, apperr.FieldError{Field: string(FieldBusinessNumber), Message: "must be a business registration number like 123-45-67890"})
	}
	fields = append(fields, c.validateLogin()...)
	if c.st.PasswordConfirm == "" {
		fields = append(fields, apperr.FieldError{Field: string(FieldPasswordConfirm), Message: "is required"})
	}
	return fields
}
