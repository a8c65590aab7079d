package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from OSRS_* environment variables.
type Config struct {
	ServerPort     string        `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	HiscoreURL     string        `envconfig:"HISCORE_URL" default:"https://secure.runescape.com/m=hiscore_oldschool"`
	CatalogueURL   string        `envconfig:"CATALOGUE_URL" default:"https://secure.runescape.com/m=itemdb_oldschool"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"tauri://localhost,http://tauri.localhost,http://localhost:1420"`
	Ngrok          bool          `envconfig:"NGROK" default:"false"`
}

// Load reads the given .env files (".env" when none are given) into the
// environment and then parses it. Variables already set win over the files.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("[INFO] no .env file found or error loading .env, continuing with existing environment variables")
	}

	var cfg Config
	if err := envconfig.Process("osrs", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
