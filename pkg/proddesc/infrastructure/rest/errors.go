package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

const errCodeInternal = "INTERNAL_ERROR"

// statusClientClosedRequest nginx's code for a client that disconnected before the response was ready
const statusClientClosedRequest = 499

type HttpError struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"status_code"`
}

func (e *HttpError) Error() string {
	return e.Message
}

// ValidationDetail one entry of a validation error body: {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type validationErrorBody struct {
	Detail []ValidationDetail `json:"detail"`
}

// MapErr maps a domain error to its HTTP representation. Messages of server-side errors are not exposed.
func MapErr(err error) HttpError {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return MapDomainErrToHttpErr(de)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if he.Code < http.StatusInternalServerError {
			message = fmt.Sprint(he.Message)
		}
		return HttpError{Message: message, Code: httpErrorCode(he.Code), StatusCode: he.Code}
	}
	return HttpError{
		Message:    "internal server error",
		Code:       errCodeInternal,
		StatusCode: http.StatusInternalServerError,
	}
}

func MapDomainErrToHttpErr(err *domain.DomainError) HttpError {
	switch err.Code {
	case domain.ErrCodeValidation:
		return HttpError{
			Message:    err.Message,
			Code:       err.Code,
			StatusCode: http.StatusUnprocessableEntity,
		}
	case domain.ErrCodeDecode:
		return HttpError{
			Message:    err.Message,
			Code:       err.Code,
			StatusCode: http.StatusBadRequest,
		}
	case domain.ErrCodeExtraction:
		return HttpError{
			Message:    "the model returned an unusable answer",
			Code:       err.Code,
			StatusCode: http.StatusBadGateway,
		}
	case domain.ErrCodeTimeout:
		return HttpError{
			Message:    "the model took too long to respond",
			Code:       err.Code,
			StatusCode: http.StatusGatewayTimeout,
		}
	case domain.ErrCodeCanceled:
		return HttpError{
			Message:    "request canceled",
			Code:       err.Code,
			StatusCode: statusClientClosedRequest,
		}
	default:
		return HttpError{
			Message:    "internal server error",
			Code:       err.Code,
			StatusCode: http.StatusInternalServerError,
		}
	}
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		if status >= http.StatusInternalServerError {
			return errCodeInternal
		}
		return "HTTP_ERROR"
	}
}

// handleError is the echo.HTTPErrorHandler. Validation errors get the structured body, everything else HttpError.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	httpErr := MapErr(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("code", httpErr.Code).Msg("request failed")
	}
	var body any = httpErr
	var de *domain.DomainError
	if errors.As(err, &de) && de.Code == domain.ErrCodeValidation {
		body = newValidationErrorBody(de)
	}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.StatusCode)
	} else {
		writeErr = c.JSON(httpErr.StatusCode, body)
	}
	if writeErr != nil {
		zerolog.Ctx(c.Request().Context()).Error().Err(writeErr).Msg("failed to write error response")
	}
}

func newValidationErrorBody(err *domain.DomainError) validationErrorBody {
	details := make([]ValidationDetail, 0, len(err.Violations))
	for _, violation := range err.Violations {
		details = append(details, ValidationDetail{Loc: violation.Loc, Msg: violation.Message, Type: "value_error"})
	}
	if len(details) == 0 {
		details = append(details, ValidationDetail{Loc: []string{"body"}, Msg: err.Message, Type: "value_error"})
	}
	return validationErrorBody{Detail: details}
}
