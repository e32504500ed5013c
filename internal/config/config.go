// Package config parses process configuration for the ledger node.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds node configuration.
type Config struct {
	Addr            string        `env:"DOMINION_ADDR" envDefault:":8080"`
	DBPath          string        `env:"DOMINION_DB_PATH" envDefault:"data/dominion.db"`
	GenesisFile     string        `env:"DOMINION_GENESIS_FILE"`
	CORSOrigins     []string      `env:"DOMINION_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"DOMINION_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv reads KEY=VALUE pairs from the given files into the environment.
// Missing files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseConfig parses .env, environment and flags into Config, in that order.
func ParseConfig(fset *flag.FlagSet, args []string) (Config, error) {
	if fset == nil {
		return Config{}, errors.New("flag parser is required")
	}
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	origins := strings.Join(cfg.CORSOrigins, ",")
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fset.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path, empty keeps state in memory")
	fset.StringVar(&cfg.GenesisFile, "genesis", cfg.GenesisFile, "YAML genesis file used on first start")
	fset.StringVar(&origins, "cors-origins", origins, "comma separated allowed CORS origins")
	fset.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	if args == nil {
		args = []string{}
	}
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitList(origins)
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("shutdown timeout must be positive")
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
