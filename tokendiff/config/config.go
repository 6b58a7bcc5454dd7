// Package config reads the configuration of the tokendiff command from a TOML file.
//
// All keys are optional, missing keys keep their default:
//
//	addr = "localhost:8080"  # address for tokendiff serve
//	format = "text"          # text, json, or yaml
//	max_tokens = 1000        # per side limit for tokendiff serve, 0 disables the limit
//	show_equal = true        # include unchanged tokens in the text format
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned for configurations that fail validation.
var ErrInvalid = errors.New("invalid config")

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// Config is the configuration of all tokendiff commands.
type Config struct {
	Addr      string `toml:"addr"`
	Format    string `toml:"format"`
	MaxTokens int    `toml:"max_tokens"`
	ShowEqual bool   `toml:"show_equal"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:      "localhost:8080",
		Format:    "text",
		MaxTokens: 1000,
		ShowEqual: true,
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: addr must not be empty", ErrInvalid))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("%w: unknown format %q, want one of %v", ErrInvalid, c.Format, Formats))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("%w: max_tokens must not be negative, got %d", ErrInvalid, c.MaxTokens))
	}
	return errors.Join(errs...)
}

