package main

import (
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
)

// Config is read from the environment (and .env, if present).
type Config struct {
	Port          string
	DatabasePath  string
	AdminUsername string
	AdminPassword string
	ContactEmail  string
	LayersFile    string
	LogLevel      log.Level
}

func loadConfig() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DatabasePath:  getenv("DATABASE_PATH", "portfolio.db"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ContactEmail:  getenv("CONTACT_EMAIL", "you@example.com"),
		LayersFile:    os.Getenv("STARFIELD_LAYERS"),
		LogLevel:      log.InfoLevel,
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			log.Warnf("Ignoring LOG_LEVEL %q: %v", lvl, err)
		} else {
			cfg.LogLevel = parsed
		}
	}

	// Default credentials for development (set both in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		log.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		log.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
