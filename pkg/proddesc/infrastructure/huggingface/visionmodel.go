package huggingface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

const (
	jpegQuality = 90
	// maxErrorBodyLength how much of an error response is kept in the error message
	maxErrorBodyLength = 512
)

type captionRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters captionParameters `json:"parameters"`
}

type captionParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type captionResponse []struct {
	GeneratedText string `json:"generated_text"`
}

type visionModel struct {
	httpClient *http.Client
	endpoint   string
	model      string
	token      string
	maxTokens  int
}

// NewVisionModel an image-to-text model (BLIP by default) served by the Hugging Face Inference API or a
// compatible endpoint at config.HuggingFaceURL.
func NewVisionModel(config *common.Config) domain.VisionModel {
	return newVisionModel(newHTTPClient(config), config)
}

// newHTTPClient the request context is the primary bound; the client timeout catches a context without a deadline.
func newHTTPClient(config *common.Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = config.InferenceTimeout
	return &http.Client{
		Timeout:   config.InferenceTimeout,
		Transport: transport,
	}
}

func newVisionModel(httpClient *http.Client, config *common.Config) *visionModel {
	return &visionModel{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(config.HuggingFaceURL, "/") + "/models/" + config.VisionModel,
		model:      config.VisionModel,
		token:      config.HuggingFaceAccessToken(),
		maxTokens:  config.CaptionMaxTokens,
	}
}

func (v *visionModel) Name() string {
	return v.model
}

func (v *visionModel) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	data, err := grid.JPEG(jpegQuality)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(captionRequest{
		Inputs:     base64.StdEncoding.EncodeToString(data),
		Parameters: captionParameters{MaxNewTokens: v.maxTokens},
	})
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	if v.token != "" {
		request.Header.Set("Authorization", "Bearer "+v.token)
	}
	response, err := v.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("caption request failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyLength))
		return "", fmt.Errorf("caption request failed with status %d: %s", response.StatusCode, strings.TrimSpace(string(errorBody)))
	}
	var captions captionResponse
	if err := json.NewDecoder(response.Body).Decode(&captions); err != nil {
		return "", fmt.Errorf("malformed caption response: %w", err)
	}
	if len(captions) == 0 {
		return "", fmt.Errorf("caption response is empty")
	}
	return strings.TrimSpace(captions[0].GeneratedText), nil
}
