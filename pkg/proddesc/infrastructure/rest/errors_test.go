package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", domain.NewValidationError(), http.StatusUnprocessableEntity, domain.ErrCodeValidation, "request validation failed"},
		{"decode", domain.NewDecodeError("unrecognized image format", nil), http.StatusBadRequest, domain.ErrCodeDecode, "unrecognized image format"},
		{"inference", domain.NewDomainError(domain.ErrCodeInference, "generation failed", errors.New("secret")), http.StatusInternalServerError, domain.ErrCodeInference, "internal server error"},
		{"extraction", domain.NewExtractionError("empty"), http.StatusBadGateway, domain.ErrCodeExtraction, "the model returned an unusable answer"},
		{"timeout", domain.NewDomainError(domain.ErrCodeTimeout, "generation timed out", nil), http.StatusGatewayTimeout, domain.ErrCodeTimeout, "the model took too long to respond"},
		{"canceled", domain.NewDomainError(domain.ErrCodeCanceled, "generation canceled", context.Canceled), statusClientClosedRequest, domain.ErrCodeCanceled, "request canceled"},
		{"wrapped", fmt.Errorf("outer: %w", domain.NewExtractionError("empty")), http.StatusBadGateway, domain.ErrCodeExtraction, "the model returned an unusable answer"},
		{"echo", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "upload is too large"), http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "upload is too large"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, errCodeInternal, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErr(tt.err)

			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}
