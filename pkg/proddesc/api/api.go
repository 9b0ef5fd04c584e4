package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/gemini"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/huggingface"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/llms/gemma"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/llms/logging"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/llms/serial"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/markup"
)

// API is the entrypoint to the description generator. It shouldn't contain any logic of its own; it glues all the
// components together and provides a public interface for domain.DescriptionService.
// This API can be used in various contexts: an HTTP server, an IRC chat, console input/output etc.
type API interface {
	// GenerateDescription writes a product description from free-text `attributes` (5..500 characters after
	// trimming). `keywords` is optional; the model is asked to weave the keywords into the copy.
	GenerateDescription(ctx context.Context, attributes string, keywords *string) (string, error)
	// GenerateFromImage writes a product description from a product photo (JPEG, PNG, GIF or WebP bytes): the photo
	// is captioned first, then the caption is used as the product details.
	GenerateFromImage(ctx context.Context, keywords string, image []byte) (string, error)
	// ModelMetadata describes the deployed models.
	ModelMetadata() domain.ModelMetadata
}

type api struct {
	descriptionService *domain.DescriptionService
	modelMetadata      domain.ModelMetadata
}

// NewAPI builds the models described by `config` once; they are shared by all requests.
func NewAPI(ctx context.Context, config *common.Config, logger zerolog.Logger) (API, error) {
	if config.VisionBackend == common.VisionBackendHuggingFace && config.HuggingFaceAccessToken() == "" {
		logger.Warn().Msg("no Hugging Face token found (HUGGING_FACE_HUB_TOKEN, HF_TOKEN, HUGGINGFACE_TOKEN); gated or rate-limited models may be unavailable")
	}
	var geminiClient *genai.Client
	if config.VisionBackend == common.VisionBackendGemini || config.LanguageBackend == common.LanguageBackendGemini {
		var err error
		geminiClient, err = gemini.NewClient(ctx, config.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
	}
	languageModel, err := newLanguageModel(config, geminiClient)
	if err != nil {
		return nil, err
	}
	visionModel, err := newVisionModel(config, geminiClient)
	if err != nil {
		return nil, err
	}
	languageModel = logging.NewLanguageModelDecorator(languageModel, logger)
	visionModel = logging.NewVisionModelDecorator(visionModel, logger)
	if config.SerializeInference {
		languageModel = serial.NewLanguageModel(languageModel)
		visionModel = serial.NewVisionModel(visionModel)
	}
	var outputFilters []domain.OutputFilter
	if config.SanitizeOutput {
		outputFilters = append(outputFilters, markup.NewFilter())
	}
	modelMetadata := domain.ModelMetadata{
		VisionModel:      config.VisionModel,
		LanguageModel:    config.LanguageModel,
		DeployedAt:       time.Now().UTC().Format(time.RFC3339),
		DVCTracked:       config.DVCTracked,
		DeploymentMethod: config.DeploymentMethod,
	}
	logger.Info().
		Str("vision_backend", config.VisionBackend).
		Str("vision_model", config.VisionModel).
		Str("language_backend", config.LanguageBackend).
		Str("language_model", config.LanguageModel).
		Msg("models ready")
	return NewAPIWithModels(languageModel, visionModel, outputFilters, modelMetadata, config.InferenceTimeout), nil
}

// NewAPIWithModels allows to inject arbitrary models (for example, in tests or when embedding the generator).
func NewAPIWithModels(
	languageModel domain.LanguageModel,
	visionModel domain.VisionModel,
	outputFilters []domain.OutputFilter,
	modelMetadata domain.ModelMetadata,
	inferenceTimeout time.Duration,
) API {
	return &api{
		descriptionService: domain.NewDescriptionService(languageModel, visionModel, outputFilters, inferenceTimeout),
		modelMetadata:      modelMetadata,
	}
}

func (a *api) GenerateDescription(ctx context.Context, attributes string, keywords *string) (string, error) {
	return a.descriptionService.GenerateFromAttributes(ctx, domain.GenerationRequest{
		Attributes: attributes,
		Keywords:   keywords,
	})
}

func (a *api) GenerateFromImage(ctx context.Context, keywords string, image []byte) (string, error) {
	return a.descriptionService.GenerateFromImage(ctx, domain.ImageGenerationRequest{
		Keywords: keywords,
		Image:    image,
	})
}

func (a *api) ModelMetadata() domain.ModelMetadata {
	return a.modelMetadata
}

func newLanguageModel(config *common.Config, geminiClient *genai.Client) (domain.LanguageModel, error) {
	switch config.LanguageBackend {
	case common.LanguageBackendOpenAI:
		return gemma.NewLanguageModel(config), nil
	case common.LanguageBackendGemini:
		return gemini.NewLanguageModel(geminiClient, config), nil
	default:
		return nil, fmt.Errorf("unknown language backend: %s", config.LanguageBackend)
	}
}

func newVisionModel(config *common.Config, geminiClient *genai.Client) (domain.VisionModel, error) {
	switch config.VisionBackend {
	case common.VisionBackendHuggingFace:
		return huggingface.NewVisionModel(config), nil
	case common.VisionBackendGemini:
		return gemini.NewVisionModel(geminiClient, config), nil
	default:
		return nil, fmt.Errorf("unknown vision backend: %s", config.VisionBackend)
	}
}
