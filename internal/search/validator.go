package search

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

const (
	msgAuthorRequired = "author is required"
	msgAuthorLength   = "author must be between 1 and 255 characters"
)

// validateRequest returns the first user facing validation message, or ""
// when req is valid.
func validateRequest(req Request) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgAuthorRequired
	}
	switch verrs[0].Tag() {
	case "required":
		return msgAuthorRequired
	default:
		return msgAuthorLength
	}
}
