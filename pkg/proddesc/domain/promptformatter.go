package domain

type PromptFormatter interface {
	// FormatPrompt wraps a single user instruction into the model's chat template, ending with the marker which
	// makes the model start its answer.
	FormatPrompt(instruction string) string
}
