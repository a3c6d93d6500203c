package http

import (
	"errors"
	"reflect"
	"strings"

	"production/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator over go-playground/validator. Failures are
// reported as ValueIsInvalid errors named after the JSON field.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), fe))
	}
	return errors.Join(joined...)
}
