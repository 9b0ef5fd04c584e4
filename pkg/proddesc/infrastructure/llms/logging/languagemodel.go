package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type languageModelDecorator struct {
	wrappedLanguageModel domain.LanguageModel
	logger               zerolog.Logger
}

// NewLanguageModelDecorator logs raw prompts and responses at the debug level and call latency at the info level.
// The request-scoped logger from the context is preferred over `logger` so that entries carry the request ID.
func NewLanguageModelDecorator(wrappedLanguageModel domain.LanguageModel, logger zerolog.Logger) domain.LanguageModel {
	return &languageModelDecorator{
		wrappedLanguageModel: wrappedLanguageModel,
		logger:               logger,
	}
}

func (l *languageModelDecorator) Name() string {
	return l.wrappedLanguageModel.Name()
}

func (l *languageModelDecorator) Complete(ctx context.Context, prompt string) (string, error) {
	logger := loggerFromContext(ctx, l.logger).With().Str("model", l.wrappedLanguageModel.Name()).Logger()
	logger.Debug().Str("prompt", prompt).Msg("raw prompt")
	t := time.Now()
	response, err := l.wrappedLanguageModel.Complete(ctx, prompt)
	took := time.Since(t)
	if err != nil {
		logger.Error().Err(err).Dur("took", took).Msg("completion failed")
		return "", err
	}
	logger.Debug().Str("response", response).Msg("raw prompt response")
	logger.Info().Dur("took", took).Int("response_length", len(response)).Msg("completion done")
	return response, nil
}

func (l *languageModelDecorator) PromptFormatter() domain.PromptFormatter {
	return l.wrappedLanguageModel.PromptFormatter()
}

func (l *languageModelDecorator) ResponseExtractor() domain.ResponseExtractor {
	return l.wrappedLanguageModel.ResponseExtractor()
}

func loggerFromContext(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		return &fallback
	}
	return logger
}
