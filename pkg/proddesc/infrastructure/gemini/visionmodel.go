package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

const (
	captionInstruction = "Write a short, factual caption of the product in this photo. Answer with the caption only."
	jpegQuality        = 90
)

type visionModel struct {
	generator contentGenerator
	model     string
	maxTokens int
}

// NewVisionModel Gemini as the captioner (multimodal input).
func NewVisionModel(client *genai.Client, config *common.Config) domain.VisionModel {
	return newVisionModel(client.Models, config)
}

func newVisionModel(generator contentGenerator, config *common.Config) *visionModel {
	return &visionModel{
		generator: generator,
		model:     config.VisionModel,
		maxTokens: config.CaptionMaxTokens,
	}
}

func (v *visionModel) Name() string {
	return "gemini-vision"
}

func (v *visionModel) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	data, err := grid.JPEG(jpegQuality)
	if err != nil {
		return "", err
	}
	parts := []*genai.Part{
		genai.NewPartFromText(captionInstruction),
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: data}},
	}
	caption, err := generateText(ctx, v.generator, v.model, parts, v.maxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(caption), nil
}
