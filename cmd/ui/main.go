package main

import (
	"log"

	"github.com/joho/godotenv"

	"bootstrapstats/app"
	"bootstrapstats/internal"
	"bootstrapstats/internal/config"
	"bootstrapstats/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	uiApp, err := ui.NewApp(ui.Config{
		Port: appConfig.Server.UIPort,
	}, app.NewAnalysisServiceFromConfig(appConfig, logger), logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting bootstrap UI on http://localhost:%s", appConfig.Server.UIPort)
	log.Fatal(uiApp.Start())
}
