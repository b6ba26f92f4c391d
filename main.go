package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bootstrapstats/app"
	"bootstrapstats/internal"
	"bootstrapstats/internal/config"
	"bootstrapstats/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	if appConfig.Analysis.Seed != nil {
		logger.Info("BOOTSTRAP_SEED set, every run uses seed %d", *appConfig.Analysis.Seed)
	}
	service := app.NewAnalysisServiceFromConfig(appConfig, logger)

	server, err := ui.NewServer(service, ui.Files(), logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	logger.Info("Analysis slots: %d, queue timeout: %s", appConfig.Analysis.MaxConcurrent, appConfig.Analysis.QueueTimeout)
	log.Fatal(server.Start(appConfig.Server.Port))
}
