package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// newValidator returns a validator that reports fields by their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError converts validator output into a VALIDATION AppError
// naming the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperrors.NewValidationError(msg)
}
