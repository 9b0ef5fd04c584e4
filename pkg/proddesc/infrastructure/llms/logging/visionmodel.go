package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type visionModelDecorator struct {
	wrappedVisionModel domain.VisionModel
	logger             zerolog.Logger
}

func NewVisionModelDecorator(wrappedVisionModel domain.VisionModel, logger zerolog.Logger) domain.VisionModel {
	return &visionModelDecorator{
		wrappedVisionModel: wrappedVisionModel,
		logger:             logger,
	}
}

func (v *visionModelDecorator) Name() string {
	return v.wrappedVisionModel.Name()
}

func (v *visionModelDecorator) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	logger := loggerFromContext(ctx, v.logger).With().Str("model", v.wrappedVisionModel.Name()).Logger()
	t := time.Now()
	caption, err := v.wrappedVisionModel.Caption(ctx, grid)
	took := time.Since(t)
	if err != nil {
		logger.Error().Err(err).Dur("took", took).Msg("captioning failed")
		return "", err
	}
	logger.Info().
		Dur("took", took).
		Int("width", grid.Width).
		Int("height", grid.Height).
		Str("caption", caption).
		Msg("captioning done")
	return caption, nil
}
