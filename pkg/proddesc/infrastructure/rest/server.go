package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/api"
)

// NewServer wires the HTTP endpoints to `descriptionAPI`. The returned server is not started.
func NewServer(descriptionAPI api.API, config *common.Config, logger zerolog.Logger, metrics *Metrics) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.HTTPErrorHandler = handleError
	server.Use(requestLogger(logger, metrics))
	server.Use(middleware.Recover())
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.CORSOrigins,
		AllowCredentials: true,
	}))

	h := &handlers{
		api:            descriptionAPI,
		metrics:        metrics,
		maxUploadBytes: config.MaxUploadBytes,
	}
	server.GET("/", h.root)
	server.GET("/health", h.health)
	server.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	for _, path := range []string{"/generate-description/", "/generate-description"} {
		server.POST(path, h.generateDescription)
	}
	for _, path := range []string{"/generate-from-image/", "/generate-from-image"} {
		server.POST(path, h.generateFromImage)
	}
	return server
}
