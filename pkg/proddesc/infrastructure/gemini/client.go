package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient creates a Gemini API client. The returned client is safe for concurrent use and is shared by the
// language and vision models.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

func generateText(
	ctx context.Context,
	generator contentGenerator,
	model string,
	parts []*genai.Part,
	maxOutputTokens int,
) (string, error) {
	response, err := generator.GenerateContent(
		ctx,
		model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{MaxOutputTokens: int32(maxOutputTokens)},
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return responseText(response)
}

// responseText concatenates the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	candidate := response.Candidates[0]
	var buf strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			buf.WriteString(part.Text)
		}
	}
	if buf.Len() > 0 {
		return buf.String(), nil
	}
	// blocked by safety filters etc.
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return "", fmt.Errorf("gemini stopped generation (finish reason: %s)", candidate.FinishReason)
	}
	return "", nil
}
