package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type languageModel struct {
	generator         contentGenerator
	model             string
	maxTokens         int
	promptFormatter   *promptFormatter
	responseExtractor *responseExtractor
}

// NewLanguageModel Gemini as the copywriter. Gemini is a chat API: the prompt is sent as a single user message
// without a chat template, and the response contains only the answer.
func NewLanguageModel(client *genai.Client, config *common.Config) domain.LanguageModel {
	return newLanguageModel(client.Models, config)
}

func newLanguageModel(generator contentGenerator, config *common.Config) *languageModel {
	return &languageModel{
		generator:         generator,
		model:             config.LanguageModel,
		maxTokens:         config.MaxNewTokens,
		promptFormatter:   &promptFormatter{},
		responseExtractor: &responseExtractor{},
	}
}

func (l *languageModel) Name() string {
	return "gemini"
}

func (l *languageModel) Complete(ctx context.Context, prompt string) (string, error) {
	return generateText(ctx, l.generator, l.model, []*genai.Part{genai.NewPartFromText(prompt)}, l.maxTokens)
}

func (l *languageModel) PromptFormatter() domain.PromptFormatter {
	return l.promptFormatter
}

func (l *languageModel) ResponseExtractor() domain.ResponseExtractor {
	return l.responseExtractor
}

type promptFormatter struct{}

func (p *promptFormatter) FormatPrompt(instruction string) string {
	return strings.TrimSpace(instruction)
}

type responseExtractor struct{}

func (r *responseExtractor) ExtractResponse(options domain.ExtractOptions) (string, error) {
	answer := strings.TrimSpace(options.RawOutput)
	if answer == "" {
		return "", domain.NewExtractionError("model returned an empty answer")
	}
	return answer, nil
}
