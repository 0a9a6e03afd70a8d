package main

import (
	"log"

	"github.com/joho/godotenv"

	"invdash/adapters/sheets"
	"invdash/app"
	"invdash/internal/api"
	"invdash/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewInventoryService(sheets.NewFetcher(appConfig.Source), appConfig.Cache.TTL)

	server := api.NewServer(service)
	log.Printf("Starting inventory API on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
