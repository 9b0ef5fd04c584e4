package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"kgeyst.com/proddesc/pkg/proddesc/api"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

const welcomeMessage = "Welcome to the Product Description Generator API!"

type rootResponse struct {
	Message   string               `json:"message"`
	ModelInfo domain.ModelMetadata `json:"model_info"`
}

type healthResponse struct {
	Status        string               `json:"status"`
	ModelsLoaded  bool                 `json:"models_loaded"`
	ModelMetadata domain.ModelMetadata `json:"model_metadata"`
}

type generateDescriptionRequest struct {
	Attributes *string `json:"attributes"`
	Keywords   *string `json:"keywords"`
}

type descriptionResponse struct {
	Description string `json:"description"`
}

type handlers struct {
	api            api.API
	metrics        *Metrics
	maxUploadBytes int64
}

func (h *handlers) root(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{
		Message:   welcomeMessage,
		ModelInfo: h.api.ModelMetadata(),
	})
}

func (h *handlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:        "healthy",
		ModelsLoaded:  true,
		ModelMetadata: h.api.ModelMetadata(),
	})
}

// generateDescription POST /generate-description/ with JSON {"attributes": "...", "keywords": "..."}
func (h *handlers) generateDescription(c echo.Context) error {
	var request generateDescriptionRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &request); err != nil {
		return domain.NewValidationError(domain.FieldViolation{
			Loc:     []string{"body"},
			Message: "JSON decode error",
		})
	}
	var attributes string
	if request.Attributes != nil {
		attributes = *request.Attributes
	}
	description, err := h.api.GenerateDescription(c.Request().Context(), attributes, request.Keywords)
	if err != nil {
		return err
	}
	h.metrics.ObserveGeneration(GenerationTypeText)
	return c.JSON(http.StatusOK, descriptionResponse{Description: description})
}

// generateFromImage POST /generate-from-image/ with a multipart form: "image" (file) and "keywords" (optional)
func (h *handlers) generateFromImage(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUploadBytes)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return h.mapUploadError(err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	description, err := h.api.GenerateFromImage(req.Context(), c.FormValue("keywords"), image)
	if err != nil {
		return err
	}
	h.metrics.ObserveGeneration(GenerationTypeImage)
	return c.JSON(http.StatusOK, descriptionResponse{Description: description})
}

func (h *handlers) mapUploadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "upload is too large")
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return domain.NewValidationError(domain.FieldViolation{
			Loc:     []string{"body", "image"},
			Message: "Field required",
		})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "malformed multipart form")
	}
}
