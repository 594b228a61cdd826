package http

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"tamweel-backend/internal/domain/facility"
	"tamweel-backend/pkg/id"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// entity ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	// SAR amounts carry at most 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// one of the known facility types
	_ = v.RegisterValidation("facilitytype", func(fl validator.FieldLevel) bool {
		return facility.ValidType(facility.Type(fl.Field().String()))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Readable messages per validation tag. Tags whose message embeds the rule
// parameter are formatted via tagParamMessages.
var tagMessages = map[string]string{
	"required":     "is required",
	"hex32":        "must be 32-char lowercase hex",
	"dec2":         "must have at most 2 decimal places",
	"facilitytype": "must be a known facility type",
}

var tagParamMessages = map[string]string{
	"datetime": "must be a date formatted %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"max":      "must be at most %s long",
}

// ToFieldErrors maps validator.ValidationErrors onto the response payload.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Message: tagMessage(e)})
	}
	return out
}

func tagMessage(e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		return msg
	}
	if format, ok := tagParamMessages[e.Tag()]; ok {
		return fmt.Sprintf(format, e.Param())
	}
	return e.Tag() + " validation failed"
}
