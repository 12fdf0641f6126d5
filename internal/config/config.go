// Package config loads optional project defaults from a .whitefiber.yaml
// file. Values left unset in the file stay nil so command-line flags keep
// their own defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in the working directory.
const FileName = ".whitefiber.yaml"

// File models .whitefiber.yaml. All fields are optional.
type File struct {
	MaxParallel *int   `yaml:"max_parallel,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
	Quiet       *bool  `yaml:"quiet,omitempty"`
	Format      string `yaml:"format,omitempty"` // default output format: text or json
}

// Load reads the config file at path, or FileName in the working directory
// when path is empty. A missing file is not an error and yields an empty
// config.
func Load(path string) (*File, error) {
	explicit := path != ""
	if path == "" {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed File
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &parsed, nil
}

func (f *File) normalize() {
	f.Timeout = strings.TrimSpace(f.Timeout)
	f.Format = strings.ToLower(strings.TrimSpace(f.Format))
}

func (f *File) validate() error {
	if f.MaxParallel != nil && *f.MaxParallel < 0 {
		return fmt.Errorf("max_parallel must be >= 0, got %d", *f.MaxParallel)
	}
	if f.Timeout != "" {
		if _, err := time.ParseDuration(f.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
		}
	}
	switch f.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("format must be 'text' or 'json', got %q", f.Format)
	}
	return nil
}

// TimeoutDuration returns the parsed per-task timeout, or zero when unset.
func (f *File) TimeoutDuration() time.Duration {
	if f.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0
	}
	return d
}
