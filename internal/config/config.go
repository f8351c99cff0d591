// Package config loads the CLI's optional YAML defaults file. The training
// and encoding core needs no configuration at all; this only exists to give
// cmd/bpe a way to set flag defaults, following the same
// read-file/yaml.Unmarshal/return-pointer-and-error shape korel's
// pkg/korel/config.LoadTaxonomy uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI-level defaults overridable by flags.
type Config struct {
	VocabSize     int `yaml:"vocab_size"`
	ReaderThreads int `yaml:"reader_threads"`
	EncodeThreads int `yaml:"encode_threads"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		VocabSize:     8000,
		ReaderThreads: 0,
		EncodeThreads: 0,
	}
}

// Load reads a YAML config file at path and overlays it onto Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
