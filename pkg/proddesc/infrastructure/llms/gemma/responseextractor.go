package gemma

import (
	"strings"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

var specialTokens = []string{bos, eos, startOfTurn, endOfTurn}

type responseExtractor struct{}

func newResponseExtractor() *responseExtractor {
	return &responseExtractor{}
}

func (r *responseExtractor) ExtractResponse(options domain.ExtractOptions) (string, error) {
	rawOutput := options.RawOutput
	var answer string
	if index := strings.LastIndex(rawOutput, modelTurn); index >= 0 {
		answer = cutAtTurnBoundary(rawOutput[index+len(modelTurn):])
	} else {
		// Some servers detokenize with special tokens skipped, so the echoed prompt loses its markers.
		plainPrompt := removeSpecialTokens(options.Prompt)
		if plainPrompt != "" && strings.HasPrefix(rawOutput, plainPrompt) {
			answer = cutAtTurnBoundary(rawOutput[len(plainPrompt):])
		} else {
			// Either already clean or an answer followed by a turn the model opened by itself. Only the text before
			// the first turn boundary tells whether the prompt was echoed.
			answer = cutAtTurnBoundary(rawOutput)
			if strings.Contains(answer, bos) {
				return "", domain.NewExtractionError("model output contains the prompt but no answer turn")
			}
		}
	}
	answer = strings.ReplaceAll(answer, eos, "")
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", domain.NewExtractionError("model returned an empty answer")
	}
	return answer, nil
}

// cutAtTurnBoundary the model can go on and start a new turn by itself; everything after the end of its turn is
// discarded.
func cutAtTurnBoundary(s string) string {
	if index := strings.Index(s, endOfTurn); index >= 0 {
		s = s[:index]
	}
	if index := strings.Index(s, startOfTurn); index >= 0 {
		s = s[:index]
	}
	return s
}

func removeSpecialTokens(s string) string {
	for _, token := range specialTokens {
		s = strings.ReplaceAll(s, token, "")
	}
	return s
}
