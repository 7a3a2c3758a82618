package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateStruct runs the struct tags and reports the first failure as a FieldError
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &FieldError{
		Field:  strings.ToLower(fe.Field()),
		Reason: reasonFor(fe.Tag()),
	}
}

func reasonFor(tag string) string {
	switch tag {
	case "notblank", "required":
		return "cannot be null or empty"
	case "gte":
		return "cannot be negative"
	case "lte":
		return "is out of range"
	default:
		return "is invalid"
	}
}
