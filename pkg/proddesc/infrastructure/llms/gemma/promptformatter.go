package gemma

import (
	"strings"
)

const (
	bos         = "<bos>"
	eos         = "<eos>"
	startOfTurn = "<start_of_turn>"
	endOfTurn   = "<end_of_turn>"
	// modelTurn the hanging turn header which forces the model to start its answer
	modelTurn = startOfTurn + "model\n"
)

type promptFormatter struct{}

func newPromptFormatter() *promptFormatter {
	return &promptFormatter{}
}

// FormatPrompt renders Gemma's chat template for a single user turn with the generation prompt appended.
func (p *promptFormatter) FormatPrompt(instruction string) string {
	var buf strings.Builder
	buf.WriteString(bos)
	buf.WriteString(startOfTurn)
	buf.WriteString("user\n")
	buf.WriteString(strings.TrimSpace(instruction))
	buf.WriteString(endOfTurn)
	buf.WriteString("\n")
	buf.WriteString(modelTurn)
	return buf.String()
}
