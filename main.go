package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/metanextviro/contigtax/cmd"
	"github.com/metanextviro/contigtax/logger"
	"go.uber.org/zap"
)

func main() {

	// Establish logger
	VERSION := "0.1.0"

	// Try load env before the logger so the level can come from .env
	dotenvErr := godotenv.Load()

	LOG_LEVEL := logger.ParseLevel(os.Getenv("CONTIGTAX_LOG_LEVEL"))

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	if dotenvErr != nil {
		logger.Debug("No .env found, using local environment")
	}

	run_id := uuid.NewString()
	logger.Info("Start:",
		zap.String("Version", VERSION),
		zap.String("run_id", run_id))

	if err := cmd.Execute(); err != nil {
		logger.Error("Run failed", zap.String("error message", err.Error()))
		logger.Sync()
		os.Exit(1)
	}
}
