package domain

import "context"

// LanguageModel a generic interface for a large language model (LLM).
type LanguageModel interface {
	// Name the name of the model. Useful for debugging.
	Name() string
	// Complete completes the given (already formatted) prompt. The raw output may include the echoed prompt
	// and the model's special tokens; use ResponseExtractor to get the answer out of it.
	Complete(ctx context.Context, prompt string) (string, error)
	// PromptFormatter the prompt formatter associated with this language model. Different language models assume
	// different chat templates and can be quite sensitive to slight variations.
	PromptFormatter() PromptFormatter
	// ResponseExtractor the extractor which knows how this model marks its answer.
	ResponseExtractor() ResponseExtractor
}
