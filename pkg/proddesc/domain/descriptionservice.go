package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DescriptionService is the orchestrator: it validates the request, turns an image into a caption if needed,
// composes the prompt, invokes the language model exactly once and extracts the answer. Models are injected and
// never mutated, so the service is safe for concurrent use.
type DescriptionService struct {
	languageModel    LanguageModel
	visionModel      VisionModel
	outputFilters    []OutputFilter
	inferenceTimeout time.Duration
}

func NewDescriptionService(
	languageModel LanguageModel,
	visionModel VisionModel,
	outputFilters []OutputFilter,
	inferenceTimeout time.Duration,
) *DescriptionService {
	return &DescriptionService{
		languageModel:    languageModel,
		visionModel:      visionModel,
		outputFilters:    outputFilters,
		inferenceTimeout: inferenceTimeout,
	}
}

// GenerateFromAttributes see API.GenerateDescription
func (d *DescriptionService) GenerateFromAttributes(ctx context.Context, request GenerationRequest) (string, error) {
	request, err := request.Validate()
	if err != nil {
		return "", err
	}
	instruction := ComposePrompt(AttributesSource(request.Attributes), request.KeywordsOrNone())
	return d.generate(ctx, instruction)
}

// GenerateFromImage see API.GenerateFromImage
func (d *DescriptionService) GenerateFromImage(ctx context.Context, request ImageGenerationRequest) (string, error) {
	grid, err := DecodeImage(request.Image)
	if err != nil {
		return "", err
	}
	var caption string
	err = d.callWithTimeout(ctx, "captioning", func(ctx context.Context) error {
		var err error
		caption, err = d.visionModel.Caption(ctx, grid)
		return err
	})
	if err != nil {
		return "", err
	}
	caption = strings.TrimSpace(caption)
	logger := zerolog.Ctx(ctx)
	if caption == "" {
		logger.Warn().Str("model", d.visionModel.Name()).Msg("vision model returned an empty caption")
	} else {
		logger.Debug().Str("caption", caption).Msg("image captioned")
	}
	instruction := ComposePrompt(CaptionSource(caption), request.KeywordsOrNone())
	return d.generate(ctx, instruction)
}

func (d *DescriptionService) generate(ctx context.Context, instruction string) (string, error) {
	prompt := d.languageModel.PromptFormatter().FormatPrompt(instruction)
	var rawOutput string
	err := d.callWithTimeout(ctx, "generation", func(ctx context.Context) error {
		var err error
		rawOutput, err = d.languageModel.Complete(ctx, prompt)
		return err
	})
	if err != nil {
		return "", err
	}
	description, err := d.languageModel.ResponseExtractor().ExtractResponse(ExtractOptions{
		Prompt:    prompt,
		RawOutput: rawOutput,
	})
	if err != nil {
		return "", err
	}
	for _, outputFilter := range d.outputFilters {
		description = outputFilter.FilterOutput(description)
	}
	if description == "" {
		return "", NewExtractionError("description is empty after filtering")
	}
	return description, nil
}

type callResult struct {
	err error
}

// callWithTimeout runs `call` once. The call gets a context which expires after inferenceTimeout; if the model
// doesn't honor the context, we stop waiting for it anyway (the result is discarded).
func (d *DescriptionService) callWithTimeout(ctx context.Context, what string, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.inferenceTimeout)
	defer cancel()
	done := make(chan callResult, 1)
	go func() {
		done <- callResult{err: call(ctx)}
	}()
	var err error
	select {
	case result := <-done:
		err = result.err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewDomainError(ErrCodeTimeout, what+" timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewDomainError(ErrCodeCanceled, what+" canceled", err)
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return NewDomainError(ErrCodeInference, what+" failed", err)
}
