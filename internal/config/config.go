// Package config resolves the process-level settings every command shares.
// Flags override environment variables, which override the optional .env
// file; the struct here carries the env-var layer.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the STACKFORGE_* environment variables.
type Settings struct {
	Manifest     string `env:"STACKFORGE_MANIFEST" envDefault:"manifest.yaml"`
	Environment  string `env:"STACKFORGE_ENV"`
	LogLevel     string `env:"STACKFORGE_LOG_LEVEL" envDefault:"info"`
	StoreBackend string `env:"STACKFORGE_STORE" envDefault:""`
	StoreRegion  string `env:"STACKFORGE_STORE_REGION" envDefault:""`
	AWSProfile   string `env:"AWS_PROFILE" envDefault:""`
}

// Load reads the optional .env file into the process environment, then
// parses the settings. A missing .env file is not an error.
func Load() (Settings, error) {
	_ = godotenv.Load()
	return env.ParseAs[Settings]()
}
