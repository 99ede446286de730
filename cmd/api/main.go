package main

import (
	"os"

	"github.com/mlreyes/panelhub/internal/pkg/logger"
	"github.com/mlreyes/panelhub/internal/server"
)

// @title PanelHub API
// @version 1.0
// @description Defense panel coordination service: routes thesis defense requests through the approval pipeline and applies the appearance-limit and compensation rules.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description JWT token, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
}
