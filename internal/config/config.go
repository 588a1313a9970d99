// Package config loads the settings of the xfileinput demo window.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Identity names accepted by Input.Identity.
const (
	IdentityName = "name"
	IdentityURI  = "uri"
)

type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type PickerConfig struct {
	Multiple   bool     `yaml:"multiple"`
	Extensions []string `yaml:"extensions"` // empty means every file
}

type InputConfig struct {
	Identity string `yaml:"identity"`  // "name" or "uri"
	TargetID string `yaml:"target_id"` // written into drag payloads
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Picker PickerConfig `yaml:"picker"`
	Input  InputConfig  `yaml:"input"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "Files", Width: 480, Height: 480},
		Picker: PickerConfig{Multiple: true},
		Input:  InputConfig{Identity: IdentityName, TargetID: "files"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults; a
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type validationError struct {
	field string
	msg   string
}

func (e validationError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 {
		errs = append(errs, validationError{"window.width", "must be positive"})
	}
	if c.Window.Height <= 0 {
		errs = append(errs, validationError{"window.height", "must be positive"})
	}
	switch c.Input.Identity {
	case IdentityName, IdentityURI:
	default:
		errs = append(errs, validationError{"input.identity", fmt.Sprintf("unknown identity %q", c.Input.Identity)})
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, validationError{"log.level", err.Error()})
	}
	for _, ext := range c.Picker.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, validationError{"picker.extensions", fmt.Sprintf("%q must start with a dot", ext)})
		}
	}
	return errors.Join(errs...)
}
