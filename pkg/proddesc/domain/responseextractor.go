package domain

type ExtractOptions struct {
	// Prompt the formatted prompt sent to the model; some backends echo it back
	Prompt    string
	RawOutput string
}

// ResponseExtractor isolates the model's answer from the raw output (which can contain the echoed prompt,
// special tokens or the beginning of another turn). Returns ErrCodeExtraction if there's no usable answer.
type ResponseExtractor interface {
	ExtractResponse(options ExtractOptions) (string, error)
}
