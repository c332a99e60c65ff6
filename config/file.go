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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/typeid/apis"
)

// File is the on-disk configuration (typeid.yaml).
type File struct {
	Naming NamingSection `yaml:"naming"`
	Scan   ScanSection   `yaml:"scan"`
	Log    LogSection    `yaml:"log"`
}

// NamingSection mirrors apis.Config.
type NamingSection struct {
	// InputPostfix is appended to derived input names (default: Input).
	// A pointer so that an explicit empty string can be told apart from unset.
	InputPostfix *string `yaml:"inputPostfix,omitempty"`
	// SuffixSeparator precedes every type argument (default: _).
	SuffixSeparator string `yaml:"suffixSeparator,omitempty"`
	// Validity is one of non-blank, present (default: non-blank).
	Validity string `yaml:"validity,omitempty"`
}

// ScanSection configures the source scanner.
type ScanSection struct {
	// Include lists directories or ** glob patterns to scan.
	Include []string `yaml:"include,omitempty"`
	// Exclude lists ** glob patterns of directories to skip.
	Exclude []string `yaml:"exclude,omitempty"`
	// Directive is the comment prefix for naming directives (default: typeid).
	Directive string `yaml:"directive,omitempty"`
	// Workers bounds concurrent directory parsing (default: 4).
	Workers int `yaml:"workers,omitempty"`
	// Strict turns name collisions into a failing exit status.
	Strict bool `yaml:"strict,omitempty"`
}

// LogSection configures the CLI logger.
type LogSection struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level,omitempty"`
	// Format is text or json (default: text).
	Format string `yaml:"format,omitempty"`
}

const (
	// DefaultDirective is the comment prefix for naming directives.
	DefaultDirective = "typeid"
	// DefaultWorkers bounds concurrent directory parsing.
	DefaultWorkers = 4
)

// DefaultFile returns a File with defaults filled in.
func DefaultFile() *File {
	postfix := DefaultInputPostfix
	return &File{
		Naming: NamingSection{
			InputPostfix:    &postfix,
			SuffixSeparator: DefaultSuffixSeparator,
			Validity:        DefaultValidity.String(),
		},
		Scan: ScanSection{
			Include:   []string{"."},
			Directive: DefaultDirective,
			Workers:   DefaultWorkers,
		},
		Log: LogSection{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile reads and decodes a configuration file.
// Missing sections keep their zero values; use Merge over DefaultFile.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (f *File) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge overlays the set fields of other onto f.
func (f *File) Merge(other *File) {
	if other == nil {
		return
	}
	if other.Naming.InputPostfix != nil {
		v := *other.Naming.InputPostfix
		f.Naming.InputPostfix = &v
	}
	if other.Naming.SuffixSeparator != "" {
		f.Naming.SuffixSeparator = other.Naming.SuffixSeparator
	}
	if other.Naming.Validity != "" {
		f.Naming.Validity = other.Naming.Validity
	}
	if len(other.Scan.Include) > 0 {
		f.Scan.Include = append([]string(nil), other.Scan.Include...)
	}
	if len(other.Scan.Exclude) > 0 {
		f.Scan.Exclude = append([]string(nil), other.Scan.Exclude...)
	}
	if other.Scan.Directive != "" {
		f.Scan.Directive = other.Scan.Directive
	}
	if other.Scan.Workers > 0 {
		f.Scan.Workers = other.Scan.Workers
	}
	if other.Scan.Strict {
		f.Scan.Strict = true
	}
	if other.Log.Level != "" {
		f.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		f.Log.Format = other.Log.Format
	}
}

// Validate checks that the configuration is usable.
func (f *File) Validate() error {
	if f.Naming.Validity != "" {
		if _, err := apis.ParseValidity(f.Naming.Validity); err != nil {
			return fmt.Errorf("naming.validity: %w", err)
		}
	}
	if f.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", f.Scan.Workers)
	}
	if strings.ContainsAny(f.Scan.Directive, " \t\n:") {
		return fmt.Errorf("scan.directive %q must not contain spaces or colons", f.Scan.Directive)
	}
	switch strings.ToLower(f.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", f.Log.Level)
	}
	switch strings.ToLower(f.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", f.Log.Format)
	}
	return nil
}

// NamingConfig converts the naming section into an apis.Config.
// Invalid values fall back to defaults; call Validate first to reject them.
func (f *File) NamingConfig() apis.Config {
	opts := []Option{WithSuffixSeparator(f.Naming.SuffixSeparator)}
	if f.Naming.InputPostfix != nil {
		opts = append(opts, WithInputPostfix(*f.Naming.InputPostfix))
	}
	if v, err := apis.ParseValidity(f.Naming.Validity); err == nil {
		opts = append(opts, WithValidity(v))
	}
	return NewConfig(opts...)
}
