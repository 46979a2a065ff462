package models

import (
	"errors"
	"strings"

	"travelmap/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags on a record and reports the first failing
// field as a domain.ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.ValidationError{
			Field: strings.ToLower(fe.Field()),
			Msg:   describeTag(fe),
			Err:   err,
		}
	}
	return domain.ValidationError{Msg: err.Error(), Err: err}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "nefield":
		return "must differ from " + strings.ToLower(fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}
