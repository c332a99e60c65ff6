/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "typeid.yaml"
	// UserConfigDir is the directory for user-level config, relative to $HOME.
	UserConfigDir = ".config/typeid"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader loads configuration with layered precedence:
//  1. defaults
//  2. user config (~/.config/typeid/config.yaml)
//  3. project config (typeid.yaml in the start directory or a parent)
//  4. an explicit file, if given
type Loader struct {
	logger *slog.Logger
	// HomeDir overrides the user home directory. Empty means os.UserHomeDir.
	HomeDir string
	// StartDir is where the project config search begins. Empty means os.Getwd.
	StartDir string
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load resolves the layered configuration. A non-empty explicit path must exist.
func (l *Loader) Load(explicit string) (*File, error) {
	cfg := DefaultFile()

	if p := l.userConfigPath(); p != "" {
		if uc, err := LoadFromFile(p); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", p))
			cfg.Merge(uc)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", p), slog.String("error", err.Error()))
		}
	}

	if p := l.findProjectConfig(); p != "" {
		if pc, err := LoadFromFile(p); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", p))
			cfg.Merge(pc)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", p), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if explicit != "" {
		ec, err := LoadFromFile(explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded explicit config", slog.String("path", explicit))
		cfg.Merge(ec)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) userConfigPath() string {
	home := l.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks from the start directory up to the filesystem root.
func (l *Loader) findProjectConfig() string {
	dir := l.StartDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}
	for {
		p := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
