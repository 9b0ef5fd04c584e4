package serial

import (
	"context"

	"golang.org/x/sync/semaphore"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type languageModel struct {
	semaphore            *semaphore.Weighted
	wrappedLanguageModel domain.LanguageModel
}

// NewLanguageModel Only 1 request can be processed at a time because the model is usually served from a single
// commodity GPU which can't process two requests simultaneously due to low amounts of VRAM. Waiting for the turn
// counts against the caller's deadline.
func NewLanguageModel(wrappedLanguageModel domain.LanguageModel) domain.LanguageModel {
	return &languageModel{
		semaphore:            semaphore.NewWeighted(1),
		wrappedLanguageModel: wrappedLanguageModel,
	}
}

func (l *languageModel) Name() string {
	return l.wrappedLanguageModel.Name()
}

func (l *languageModel) Complete(ctx context.Context, prompt string) (string, error) {
	if err := l.semaphore.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.semaphore.Release(1)
	return l.wrappedLanguageModel.Complete(ctx, prompt)
}

func (l *languageModel) PromptFormatter() domain.PromptFormatter {
	return l.wrappedLanguageModel.PromptFormatter()
}

func (l *languageModel) ResponseExtractor() domain.ResponseExtractor {
	return l.wrappedLanguageModel.ResponseExtractor()
}
