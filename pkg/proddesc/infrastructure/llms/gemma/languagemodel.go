package gemma

import (
	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/completions"
)

// NewLanguageModel Gemma served by an OpenAI-compatible completions server (vLLM, llama.cpp server, TGI).
func NewLanguageModel(config *common.Config) domain.LanguageModel {
	return completions.NewLanguageModel(
		"gemma",
		config.LanguageModel,
		newPromptFormatter(),
		newResponseExtractor(),
		config,
	)
}
