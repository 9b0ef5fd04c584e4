package domain

import "context"

// VisionModel produces a short natural-language caption of an image.
type VisionModel interface {
	// Name the name of the model. Useful for debugging.
	Name() string
	Caption(ctx context.Context, grid *PixelGrid) (string, error)
}
