// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvLogLevel  = "DESKFOLIO_LOG_LEVEL"
	EnvLogFile   = "DESKFOLIO_LOG_FILE"
	EnvContentDB = "DESKFOLIO_CONTENT_DB"
	EnvAddr      = "DESKFOLIO_ADDR"
	EnvPort      = "PORT"
)

// LoadDotenv reads .env files into the process environment without
// overwriting variables that are already set. A missing file is not an
// error.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv(EnvContentDB); v != "" {
		cfg.Content.Database = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
}
