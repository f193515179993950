package main

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/chronos-tachyon/squeeze"
)

// Config is the optional configuration file accepted by -config.  Both YAML
// and JSON are accepted.
type Config struct {
	// Algorithm is an id (1, 2, 3) or a name (huffman, lzw, arithmetic).
	Algorithm string `json:"algorithm,omitempty"`

	// FixedCodeWidth selects 12-bit LZW codes.
	FixedCodeWidth bool `json:"fixedCodeWidth,omitempty"`

	// Verbose logs codec progress events to stderr.
	Verbose bool `json:"verbose,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{Algorithm: "huffman"}
}

// ParseConfig decodes a configuration file, filling unset fields from
// DefaultConfig.
func ParseConfig(raw []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := squeeze.ParseAlgorithm(cfg.Algorithm); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(raw)
}
