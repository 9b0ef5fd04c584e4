package domain

import "strings"

type SourceKind int

const (
	// SourceKindAttributes the product is described by the user's free-text attributes
	SourceKindAttributes = SourceKind(iota)
	// SourceKindCaption the product is described by the vision model's caption of a photo
	SourceKindCaption
)

// DescriptionSource is what the copy is written about.
type DescriptionSource struct {
	Kind SourceKind
	Text string
}

func AttributesSource(attributes string) DescriptionSource {
	return DescriptionSource{Kind: SourceKindAttributes, Text: attributes}
}

func CaptionSource(caption string) DescriptionSource {
	return DescriptionSource{Kind: SourceKindCaption, Text: caption}
}

// ComposePrompt renders the copywriting instruction for the language model. The instruction is the only way we
// steer the model, so the wording is fixed; the model's chat template is applied later by its PromptFormatter.
// Empty keywords are rendered as NoKeywords.
func ComposePrompt(source DescriptionSource, keywords string) string {
	var buf strings.Builder
	buf.WriteString("You are an expert e-commerce copywriter. Your task is to write a compelling product description in a single paragraph.\n")
	buf.WriteString("The description should be between 80 and 120 words.\n")
	buf.WriteString("Do not use any Markdown formatting (no hashtags, asterisks, etc.).\n")
	buf.WriteString("Do not invent brand names.\n\n")
	buf.WriteString("--- DETAILS ---\n")
	switch source.Kind {
	case SourceKindCaption:
		buf.WriteString("Visual Analysis: A product described as '")
		buf.WriteString(source.Text)
		buf.WriteString("'.\n")
	default:
		buf.WriteString("Product Attributes: ")
		buf.WriteString(source.Text)
		buf.WriteString("\n")
	}
	buf.WriteString("IMPORTANT: You MUST naturally include the following keywords in the description: ")
	buf.WriteString(keywordsOrNone(keywords))
	return buf.String()
}
