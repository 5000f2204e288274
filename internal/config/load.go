package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Load reads and parses the schedule at path.
//
// A missing or unreadable file is returned as the underlying fs error; every
// other failure wraps ErrInvalidConfig.
func Load(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, b)
}

// Parse decodes data using the format implied by path's extension.
func Parse(path string, data []byte) (*Config, error) {
	jb, format, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	var head struct {
		Schedule json.RawMessage `json:"schedule"`
	}
	if err := json.Unmarshal(jb, &head); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if len(head.Schedule) == 0 || string(head.Schedule) == "null" {
		return nil, fmt.Errorf("%w: %s: missing top-level %q list", ErrInvalidConfig, path, "schedule")
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %v", ErrInvalidConfig, path, format, err)
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: %s: trailing data", ErrInvalidConfig, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// Validate checks the fields a decoder cannot enforce by itself.
// Duplicate names are allowed.
func (c *Config) Validate() error {
	for i, t := range c.Schedule {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("schedule[%d]: name is required", i)
		}
		if strings.TrimSpace(t.Command) == "" {
			return fmt.Errorf("schedule[%d] (%s): command is required", i, t.Name)
		}
	}
	if _, err := ParseDuration("storage.busy_timeout", c.Storage.BusyTimeout, 0); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", "file", "json", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	return nil
}

// ResolvePath returns the value of env if set, def otherwise.
func ResolvePath(env, def string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return def
}
