package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the vamana index builder/CLI.
type Config struct {
	Vamana VamanaConfig
}

// VamanaConfig holds the proximity-graph build/search knobs.
type VamanaConfig struct {
	R     int     // Maximum out-degree per node (default: 64)
	L     int     // Candidate list size during build/search (default: 100)
	Alpha float64 // Robust-prune slack factor, >= 1.0 (default: 1.2)
	Seed  uint64  // Deterministic build-shuffle seed (default: 42)
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Vamana: VamanaConfig{
			R:     64,
			L:     100,
			Alpha: 1.2,
			Seed:  42,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := Default()

	// Vamana configuration
	if r := os.Getenv("VECTOR_VAMANA_R"); r != "" {
		if rVal, err := strconv.Atoi(r); err == nil {
			cfg.Vamana.R = rVal
		}
	}
	if l := os.Getenv("VECTOR_VAMANA_L"); l != "" {
		if lVal, err := strconv.Atoi(l); err == nil {
			cfg.Vamana.L = lVal
		}
	}
	if alpha := os.Getenv("VECTOR_VAMANA_ALPHA"); alpha != "" {
		if aVal, err := strconv.ParseFloat(alpha, 64); err == nil {
			cfg.Vamana.Alpha = aVal
		}
	}
	if seed := os.Getenv("VECTOR_VAMANA_SEED"); seed != "" {
		if sVal, err := strconv.ParseUint(seed, 10, 64); err == nil {
			cfg.Vamana.Seed = sVal
		}
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Vamana.R < 1 {
		return fmt.Errorf("invalid vamana R: %d (must be > 0)", c.Vamana.R)
	}
	if c.Vamana.L < 1 {
		return fmt.Errorf("invalid vamana L: %d (must be > 0)", c.Vamana.L)
	}
	if c.Vamana.Alpha < 1.0 {
		return fmt.Errorf("invalid vamana alpha: %f (must be >= 1.0)", c.Vamana.Alpha)
	}

	return nil
}
