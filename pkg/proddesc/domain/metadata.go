package domain

// ModelMetadata describes the deployed models. Fixed at startup.
type ModelMetadata struct {
	VisionModel      string `json:"vision_model"`
	LanguageModel    string `json:"language_model"`
	DeployedAt       string `json:"deployed_at"`
	DVCTracked       bool   `json:"dvc_tracked"`
	DeploymentMethod string `json:"deployment_method"`
}
