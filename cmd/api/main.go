package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/server"
)

// @title Lectern API
// @version 1.0
// @description Backend API for an academic portfolio website

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name lectern_session
// @description Opaque session token issued at login

func main() {
	// A .env file is a local development convenience; absence is fine.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
