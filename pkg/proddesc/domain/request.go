package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinAttributesLength = 5
	MaxAttributesLength = 500
	// NoKeywords is substituted into the prompt when the caller provides no keywords.
	NoKeywords = "None"
)

// GenerationRequest asks for a description built from free-text product attributes.
type GenerationRequest struct {
	Attributes string  `json:"attributes" validate:"required,min=5,max=500"`
	Keywords   *string `json:"keywords,omitempty"`
}

// ImageGenerationRequest asks for a description built from a product photo.
type ImageGenerationRequest struct {
	Keywords string
	Image    []byte
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate trims the attributes and checks their length (in characters). Returns the normalized request.
func (r GenerationRequest) Validate() (GenerationRequest, error) {
	r.Attributes = strings.TrimSpace(r.Attributes)
	err := requestValidator.Struct(r)
	if err == nil {
		return r, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return r, NewDomainError(ErrCodeValidation, "request validation failed", err)
	}
	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		violations = append(violations, FieldViolation{
			Loc:     []string{"body", fieldErr.Field()},
			Message: violationMessage(fieldErr),
		})
	}
	return r, NewValidationError(violations...)
}

// KeywordsOrNone see NoKeywords
func (r GenerationRequest) KeywordsOrNone() string {
	if r.Keywords == nil {
		return NoKeywords
	}
	return keywordsOrNone(*r.Keywords)
}

// KeywordsOrNone see NoKeywords
func (r ImageGenerationRequest) KeywordsOrNone() string {
	return keywordsOrNone(r.Keywords)
}

func keywordsOrNone(keywords string) string {
	if keywords == "" {
		return NoKeywords
	}
	return keywords
}

func violationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Field required"
	case "min":
		return fmt.Sprintf("Value must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Value must be at most %s characters", fieldErr.Param())
	default:
		return fmt.Sprintf("Value failed the '%s' check", fieldErr.Tag())
	}
}
