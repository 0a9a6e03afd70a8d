package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"invdash/adapters/sheets"
	"invdash/app"
	"invdash/internal/config"
	"invdash/ui"
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
	gin.SetMode(appConfig.Server.GinMode)

	fetcher := sheets.NewFetcher(appConfig.Source)
	if appConfig.Source.UsesWorkbook() {
		log.Printf("Using workbook data source: %s", appConfig.Source.WorkbookFile)
	} else {
		log.Printf("Using CSV export data source")
	}

	service := app.NewInventoryService(fetcher, appConfig.Cache.TTL)

	server, err := ui.NewServer(service)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting inventory dashboard on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
