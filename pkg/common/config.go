package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	VisionBackendHuggingFace = "huggingface"
	VisionBackendGemini      = "gemini"

	LanguageBackendOpenAI = "openai"
	LanguageBackendGemini = "gemini"
)

// Config allows to customize parameters instead of hard-coding them. Values come from (in order of precedence)
// environment variables, a .env file, the YAML config file and finally the defaults in DefaultConfig.
type Config struct {
	Address         string        `yaml:"address" env:"ADDRESS" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT" validate:"gte=0"`
	CORSOrigins     []string      `yaml:"corsOrigins" env:"CORS_ORIGINS" envSeparator:","`
	MaxUploadBytes  int64         `yaml:"maxUploadBytes" env:"MAX_UPLOAD_BYTES" validate:"gt=0"`

	LogLevel string `yaml:"logLevel" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	// LogPath file path where to save the logs; empty means the console
	LogPath string `yaml:"logPath" env:"LOG_PATH"`

	VisionBackend string `yaml:"visionBackend" env:"VISION_BACKEND" validate:"oneof=huggingface gemini"`
	VisionModel   string `yaml:"visionModel" env:"VISION_MODEL" validate:"required"`
	// CaptionMaxTokens bounds the length of the caption produced by the vision model
	CaptionMaxTokens int    `yaml:"captionMaxTokens" env:"CAPTION_MAX_TOKENS" validate:"gt=0"`
	LanguageBackend  string `yaml:"languageBackend" env:"LANGUAGE_BACKEND" validate:"oneof=openai gemini"`
	LanguageModel    string `yaml:"languageModel" env:"LANGUAGE_MODEL" validate:"required"`
	// MaxNewTokens the token budget of a single generation call
	MaxNewTokens int `yaml:"maxNewTokens" env:"MAX_NEW_TOKENS" validate:"gt=0"`

	CompletionsURL    string `yaml:"completionsURL" env:"COMPLETIONS_URL" validate:"required_if=LanguageBackend openai"`
	CompletionsAPIKey string `yaml:"completionsAPIKey" env:"COMPLETIONS_API_KEY"`
	HuggingFaceURL    string `yaml:"huggingFaceURL" env:"HUGGING_FACE_URL" validate:"required_if=VisionBackend huggingface"`
	GeminiAPIKey      string `yaml:"geminiAPIKey" env:"GEMINI_API_KEY"`

	// InferenceTimeout when to give up on a model call which takes too long
	InferenceTimeout time.Duration `yaml:"inferenceTimeout" env:"INFERENCE_TIMEOUT" validate:"gt=0"`
	// SerializeInference allows only one in-flight call per model (useful when the backend runs on a single GPU)
	SerializeInference bool `yaml:"serializeInference" env:"SERIALIZE_INFERENCE"`
	SanitizeOutput     bool `yaml:"sanitizeOutput" env:"SANITIZE_OUTPUT"`

	DVCTracked       bool   `yaml:"dvcTracked" env:"DVC_TRACKED"`
	DeploymentMethod string `yaml:"deploymentMethod" env:"DEPLOYMENT_METHOD"`

	// IRC* are only used by the IRC frontend.
	IRCServer  string `yaml:"ircServer" env:"IRC_SERVER"`
	IRCNick    string `yaml:"ircNick" env:"IRC_NICK"`
	IRCChannel string `yaml:"ircChannel" env:"IRC_CHANNEL"`

	// Credentials for gated model downloads are only read from the environment.
	HubToken         string `yaml:"-" env:"HUGGING_FACE_HUB_TOKEN"`
	HFToken          string `yaml:"-" env:"HF_TOKEN"`
	HuggingFaceToken string `yaml:"-" env:"HUGGINGFACE_TOKEN"`
}

func DefaultConfig() *Config {
	return &Config{
		Address:         ":8000",
		ShutdownTimeout: 10 * time.Second,
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"https://product-description-generator-demo.vercel.app",
		},
		MaxUploadBytes:     10 << 20,
		LogLevel:           "info",
		VisionBackend:      VisionBackendHuggingFace,
		VisionModel:        "Salesforce/blip-image-captioning-large",
		CaptionMaxTokens:   50,
		LanguageBackend:    LanguageBackendOpenAI,
		LanguageModel:      "google/gemma-2b-it",
		MaxNewTokens:       200,
		CompletionsURL:     "http://localhost:8080/v1",
		HuggingFaceURL:     "https://api-inference.huggingface.co",
		InferenceTimeout:   2 * time.Minute,
		SerializeInference: true,
		SanitizeOutput:     true,
		DVCTracked:         true,
		DeploymentMethod:   "runtime_download",
		IRCServer:          "irc.libera.chat:6667",
		IRCNick:            "proddesc",
		IRCChannel:         "#proddesc",
	}
}

// LoadConfig reads the YAML file at `path` (a missing file is not an error), then applies .env and environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	// .env is optional
	_ = godotenv.Load()
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// HuggingFaceAccessToken returns the first non-empty token among HUGGING_FACE_HUB_TOKEN, HF_TOKEN and
// HUGGINGFACE_TOKEN.
func (c *Config) HuggingFaceAccessToken() string {
	for _, token := range []string{c.HubToken, c.HFToken, c.HuggingFaceToken} {
		if token != "" {
			return token
		}
	}
	return ""
}
