package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/yigit/lecturehub/internal/pkg/logger"
	"github.com/yigit/lecturehub/internal/server"
)

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
