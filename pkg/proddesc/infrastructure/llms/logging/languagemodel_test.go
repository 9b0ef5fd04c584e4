package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type fakeLanguageModel struct {
	response string
	err      error
}

func (f *fakeLanguageModel) Name() string { return "fake" }

func (f *fakeLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLanguageModel) PromptFormatter() domain.PromptFormatter { return nil }

func (f *fakeLanguageModel) ResponseExtractor() domain.ResponseExtractor { return nil }

type fakeVisionModel struct {
	caption string
}

func (f *fakeVisionModel) Name() string { return "fake-vision" }

func (f *fakeVisionModel) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	return f.caption, nil
}

func TestLanguageModelDecorator_LogsToFallbackLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	model := NewLanguageModelDecorator(&fakeLanguageModel{response: "answer"}, logger)

	response, err := model.Complete(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, "answer", response)
	assert.Contains(t, buf.String(), `"prompt":"the prompt"`)
	assert.Contains(t, buf.String(), `"response":"answer"`)
	assert.Contains(t, buf.String(), `"model":"fake"`)
}

func TestLanguageModelDecorator_PrefersContextLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	model := NewLanguageModelDecorator(&fakeLanguageModel{response: "answer"}, zerolog.New(&fallback))
	ctx := zerolog.New(&scoped).With().Str("request_id", "abc").Logger().WithContext(context.Background())

	_, err := model.Complete(ctx, "the prompt")

	require.NoError(t, err)
	assert.Empty(t, fallback.String())
	assert.Contains(t, scoped.String(), `"request_id":"abc"`)
}

func TestLanguageModelDecorator_PropagatesErrors(t *testing.T) {
	var buf bytes.Buffer
	expectedErr := errors.New("boom")
	model := NewLanguageModelDecorator(&fakeLanguageModel{err: expectedErr}, zerolog.New(&buf))

	_, err := model.Complete(context.Background(), "the prompt")

	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, buf.String(), "completion failed")
}

func TestVisionModelDecorator(t *testing.T) {
	var buf bytes.Buffer
	model := NewVisionModelDecorator(&fakeVisionModel{caption: "a red mug"}, zerolog.New(&buf))

	caption, err := model.Caption(context.Background(), &domain.PixelGrid{Width: 2, Height: 3})

	require.NoError(t, err)
	assert.Equal(t, "a red mug", caption)
	assert.Equal(t, "fake-vision", model.Name())
	assert.Contains(t, buf.String(), `"caption":"a red mug"`)
}
