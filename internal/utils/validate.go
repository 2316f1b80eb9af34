package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/noora/internal/apperr"
)

var validate = validator.New()

// ValidateStruct runs tag-based validation and converts the first failure into a
// field-level validation error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &apperr.Error{
				Kind:    apperr.KindValidation,
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			}
		}
		return apperr.Validation("invalid request")
	}
	return nil
}
