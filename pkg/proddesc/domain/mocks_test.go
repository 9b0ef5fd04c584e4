package domain

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
)

// --- Mocks ---

type mockPromptFormatter struct{}

func (m *mockPromptFormatter) FormatPrompt(instruction string) string {
	return "<turn>" + instruction + "<answer>"
}

type mockResponseExtractor struct{}

func (m *mockResponseExtractor) ExtractResponse(options ExtractOptions) (string, error) {
	_, answer, found := strings.Cut(options.RawOutput, "<answer>")
	if !found {
		answer = options.RawOutput
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", NewExtractionError("empty")
	}
	return answer, nil
}

type mockLanguageModel struct {
	response   string
	err        error
	delay      time.Duration
	calls      atomic.Int32
	lastPrompt atomic.Value
}

func (m *mockLanguageModel) Name() string {
	return "mock-llm"
}

func (m *mockLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.lastPrompt.Store(prompt)
	if m.delay > 0 {
		// ignores ctx on purpose to simulate a backend which doesn't support cancellation
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return "", m.err
	}
	return prompt + m.response, nil
}

func (m *mockLanguageModel) PromptFormatter() PromptFormatter {
	return &mockPromptFormatter{}
}

func (m *mockLanguageModel) ResponseExtractor() ResponseExtractor {
	return &mockResponseExtractor{}
}

func (m *mockLanguageModel) prompt() string {
	prompt, _ := m.lastPrompt.Load().(string)
	return prompt
}

type mockVisionModel struct {
	caption  string
	err      error
	calls    atomic.Int32
	lastGrid *PixelGrid
}

func (m *mockVisionModel) Name() string {
	return "mock-vision"
}

func (m *mockVisionModel) Caption(ctx context.Context, grid *PixelGrid) (string, error) {
	m.calls.Add(1)
	m.lastGrid = grid
	return m.caption, m.err
}

type mockOutputFilter struct {
	replaceWith *string
}

func (m *mockOutputFilter) FilterOutput(description string) string {
	if m.replaceWith != nil {
		return *m.replaceWith
	}
	return strings.ToUpper(description)
}
