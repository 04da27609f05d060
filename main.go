package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/starfield"
)

func main() {
	cfg := loadConfig()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           cfg.LogLevel,
		Prefix:          "portfolio",
	})
	log.SetDefault(logger)
	if cfg.LogLevel > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	layers, err := starfield.LoadLayerSpecs(cfg.LayersFile)
	if err != nil {
		log.Fatal("Failed to load starfield layers", "err", err)
	}

	if err := initDB(cfg.DatabasePath); err != nil {
		log.Fatal("Failed to open database", "err", err)
	}
	defer db.Close()

	initAdminToken()
	if err := initVisitorTracking(); err != nil {
		log.Fatal("Failed to create tracking tables", "err", err)
	}

	r, err := setupRouter(cfg, layers, logger)
	if err != nil {
		log.Fatal("Failed to set up routes", "err", err)
	}

	log.Info("Listening", "port", cfg.Port, "layers", len(layers))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", "err", err)
	}
}
