// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for deskfolio configuration.

package config

import (
	"os"
	"path/filepath"
)

const (
	dirName  = "deskfolio"
	fileName = "deskfolio.yaml"

	// EnvConfig points at an explicit config file.
	EnvConfig = "DESKFOLIO_CONFIG"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, dirName), nil
}

// Path returns the config file location: $DESKFOLIO_CONFIG when set,
// otherwise deskfolio/deskfolio.yaml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, fileName), nil
}

// DefaultLogPath is the log file used when none is configured.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, dirName, "deskfolio.log")
}
