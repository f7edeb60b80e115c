// Package config provides optional YAML configuration for emobsread: output
// file stems, hex-dump page geometry, and media search roots. CLI flags
// always win over the config file, which always wins over these defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config overrides emobsread's built-in defaults.
type Config struct {
	// OutputStems names the default output files, keyed by kind: "data",
	// "tlclist", "tlchierarchy", "hexdump". Any key omitted keeps its
	// built-in default.
	OutputStems map[string]string `yaml:"output_stems"`

	// HexDump configures the hex-dump pretty-printer's page geometry.
	HexDump HexDumpConfig `yaml:"hex_dump"`

	// MediaRoots lists additional directories searched for referenced media
	// files, beyond the EMObs file's own directory.
	MediaRoots []string `yaml:"media_roots"`
}

// HexDumpConfig mirrors emobs.HexDumpOptions so it can be expressed in YAML.
type HexDumpConfig struct {
	Width       int `yaml:"width"`
	RowsPerPage int `yaml:"rows_per_page"`
}

// defaultOutputStems are the built-in output file names, used whenever the
// config omits a kind and no CLI flag overrides it.
var defaultOutputStems = map[string]string{
	"data":         "EMObs_Data.txt",
	"tlclist":      "EMObs_TLCList.txt",
	"tlchierarchy": "EMObs_TLCHierarchy.txt",
	"hexdump":      "EMObs_HexDump.txt",
}

// Load reads the YAML file at path, applies defaults, and validates it. A
// path of "" returns the all-defaults Config without touching the
// filesystem.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: cannot parse %q: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed for %q: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero-value optional fields with the built-in
// defaults.
func applyDefaults(cfg *Config) {
	if cfg.OutputStems == nil {
		cfg.OutputStems = make(map[string]string, len(defaultOutputStems))
	}
	for kind, stem := range defaultOutputStems {
		if cfg.OutputStems[kind] == "" {
			cfg.OutputStems[kind] = stem
		}
	}
	if cfg.HexDump.Width == 0 {
		cfg.HexDump.Width = 16
	}
	if cfg.HexDump.RowsPerPage == 0 {
		cfg.HexDump.RowsPerPage = 48
	}
}

// validate checks that enumerated and numeric fields hold sane values.
func validate(cfg *Config) error {
	var errs []error

	if cfg.HexDump.Width <= 0 {
		errs = append(errs, fmt.Errorf("hex_dump.width must be positive, got %d", cfg.HexDump.Width))
	}
	if cfg.HexDump.RowsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("hex_dump.rows_per_page must be positive, got %d", cfg.HexDump.RowsPerPage))
	}
	for kind := range cfg.OutputStems {
		if _, known := defaultOutputStems[kind]; !known {
			errs = append(errs, fmt.Errorf("output_stems: unknown kind %q", kind))
		}
	}
	for i, root := range cfg.MediaRoots {
		if root == "" {
			errs = append(errs, fmt.Errorf("media_roots[%d]: empty path", i))
		}
	}

	return errors.Join(errs...)
}
