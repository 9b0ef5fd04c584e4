package serial

import (
	"context"

	"golang.org/x/sync/semaphore"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type visionModel struct {
	semaphore          *semaphore.Weighted
	wrappedVisionModel domain.VisionModel
}

// NewVisionModel see NewLanguageModel
func NewVisionModel(wrappedVisionModel domain.VisionModel) domain.VisionModel {
	return &visionModel{
		semaphore:          semaphore.NewWeighted(1),
		wrappedVisionModel: wrappedVisionModel,
	}
}

func (v *visionModel) Name() string {
	return v.wrappedVisionModel.Name()
}

func (v *visionModel) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	if err := v.semaphore.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer v.semaphore.Release(1)
	return v.wrappedVisionModel.Caption(ctx, grid)
}
