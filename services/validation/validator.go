package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"termcompass/services/apperr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := registerCustom(validate); err != nil {
			panic(fmt.Sprintf("validation: failed to register custom tags: %v", err))
		}
	})
	return validate
}

// RegisterGinValidations installs the custom tags into gin's binding engine so request structs can use them.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return registerCustom(v)
}

func registerCustom(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return NonEmptyTrimmed(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("bizno", func(fl validator.FieldLevel) bool {
		return ValidBusinessNumber(fl.Field().String())
	})
}

// Struct validates s and translates failures into field errors. It returns nil when s is valid.
func Struct(s interface{}) []apperr.FieldError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return FieldErrors(err)
}

// FieldErrors converts a validator error into the shared field error list.
func FieldErrors(err error) []apperr.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperr.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "bizno":
		return "must be a business registration number like 123-45-67890"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
