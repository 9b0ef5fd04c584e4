package completions

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

var errNoChoices = errors.New("completion has no choices")

// local inference servers usually accept any key but the client refuses to send an empty one
const placeholderAPIKey = "EMPTY"

type languageModel struct {
	name              string
	model             string
	maxTokens         int
	client            openai.Client
	promptFormatter   domain.PromptFormatter
	responseExtractor domain.ResponseExtractor
}

// NewLanguageModel Creates a language model served by an OpenAI-compatible completions endpoint (vLLM, llama.cpp
// server, TGI etc.) at config.CompletionsURL. The prompt is sent already formatted (raw completion, not chat), and
// the server is asked to echo it back so that the output has the same shape as a local `generate(..)` call.
// `model` is the model ID as known by the server.
func NewLanguageModel(
	name string,
	model string,
	promptFormatter domain.PromptFormatter,
	responseExtractor domain.ResponseExtractor,
	config *common.Config,
) domain.LanguageModel {
	apiKey := config.CompletionsAPIKey
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}
	return &languageModel{
		name:      name,
		model:     model,
		maxTokens: config.MaxNewTokens,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(config.CompletionsURL),
			// a failed generation is reported to the caller as is
			option.WithMaxRetries(0),
		),
		promptFormatter:   promptFormatter,
		responseExtractor: responseExtractor,
	}
}

func (l *languageModel) Name() string {
	return l.name
}

func (l *languageModel) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := l.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:     openai.CompletionNewParamsModel(l.model),
		Prompt:    openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens: openai.Int(int64(l.maxTokens)),
		Echo:      openai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errNoChoices
	}
	return completion.Choices[0].Text, nil
}

func (l *languageModel) PromptFormatter() domain.PromptFormatter {
	return l.promptFormatter
}

func (l *languageModel) ResponseExtractor() domain.ResponseExtractor {
	return l.responseExtractor
}
