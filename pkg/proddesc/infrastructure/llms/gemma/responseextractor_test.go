package gemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

func TestResponseExtractor_ExtractResponse(t *testing.T) {
	prompt := newPromptFormatter().FormatPrompt("Describe a red t-shirt.")
	tests := []struct {
		name      string
		rawOutput string
		expected  string
	}{
		{
			name:      "echoed prompt with eos",
			rawOutput: prompt + "Hello world<eos>",
			expected:  "Hello world",
		},
		{
			name:      "uses the last model turn",
			rawOutput: "<start_of_turn>model\nfirst<end_of_turn>\n<start_of_turn>model\n  second  <eos>",
			expected:  "second",
		},
		{
			name:      "cuts at the end of the turn",
			rawOutput: prompt + "A soft tee.<end_of_turn>\n<start_of_turn>user\nmore",
			expected:  "A soft tee.",
		},
		{
			name:      "cuts at a new turn without end marker",
			rawOutput: prompt + "A soft tee.\n<start_of_turn>user\nmore",
			expected:  "A soft tee.",
		},
		{
			name:      "echo without special tokens",
			rawOutput: "user\nDescribe a red t-shirt.\nmodel\nA soft tee.",
			expected:  "A soft tee.",
		},
		{
			name:      "no echo, model opens a new turn",
			rawOutput: "A soft tee.<end_of_turn>\n<start_of_turn>user\nmore",
			expected:  "A soft tee.",
		},
		{
			name:      "no echo, new turn without end marker",
			rawOutput: "A soft tee.\n<start_of_turn>user\nmore<eos>",
			expected:  "A soft tee.",
		},
		{
			name:      "already clean",
			rawOutput: "  A soft tee.<eos>",
			expected:  "A soft tee.",
		},
	}
	extractor := newResponseExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := extractor.ExtractResponse(domain.ExtractOptions{Prompt: prompt, RawOutput: tt.rawOutput})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, answer)
		})
	}
}

func TestResponseExtractor_ExtractResponse_Errors(t *testing.T) {
	prompt := newPromptFormatter().FormatPrompt("Describe a red t-shirt.")
	for name, rawOutput := range map[string]string{
		"empty":                      "",
		"only eos":                   prompt + "<eos>",
		"prompt without answer turn": "<bos><start_of_turn>user\nDescribe a red t-shirt.<end_of_turn>",
		"whitespace answer":          prompt + "  \n <end_of_turn>",
		"echo without model turn":    "<bos><start_of_turn>user\nDescribe a red t-shirt.",
		"turn boundary first":        "<end_of_turn>\n<start_of_turn>user\nmore",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newResponseExtractor().ExtractResponse(domain.ExtractOptions{Prompt: prompt, RawOutput: rawOutput})

			assert.True(t, domain.HasCode(err, domain.ErrCodeExtraction), "unexpected error: %v", err)
		})
	}
}

func TestResponseExtractor_Idempotent(t *testing.T) {
	extractor := newResponseExtractor()
	for _, rawOutput := range []string{
		"<bos><start_of_turn>user\nhi<end_of_turn>\n<start_of_turn>model\nHello world<eos>",
		"Already clean text.",
		"  padded<eos>  ",
	} {
		once, err := extractor.ExtractResponse(domain.ExtractOptions{RawOutput: rawOutput})
		require.NoError(t, err)

		twice, err := extractor.ExtractResponse(domain.ExtractOptions{RawOutput: once})
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		assert.NotContains(t, once, startOfTurn)
		assert.NotContains(t, once, eos)
	}
}
