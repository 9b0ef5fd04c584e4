package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/api"
	"kgeyst.com/proddesc/pkg/proddesc/infrastructure/rest"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig(configPath())
	if err != nil {
		return err
	}
	logger := common.NewLogger(config.LogLevel, config.LogPath)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	descriptionAPI, err := api.NewAPI(ctx, config, logger)
	if err != nil {
		return err
	}
	server := rest.NewServer(descriptionAPI, config, logger, rest.NewMetrics())
	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", config.Address).Msg("starting the server")
		serverErr <- server.Start(config.Address)
	}()
	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server closed with error")
		return err
	}
	return nil
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}
