package config

import (
	"fmt"
	"os"

	units "github.com/docker/go-units"
)

// EnvRoutesMaxBodySize overrides the request body size limit.
const EnvRoutesMaxBodySize = "WAYPOST_MAX_BODY_SIZE"

// RoutesConfig holds dispatch-layer settings.
type RoutesConfig struct {
	// MaxBodySize limits request bodies, as a human-readable size
	// string ("1MB", "512KB").
	MaxBodySize string `toml:"max_body_size"`
}

// MaxBodyBytes returns the parsed body limit in bytes.
func (c *RoutesConfig) MaxBodyBytes() int64 {
	n, _ := units.RAMInBytes(c.MaxBodySize)
	return n
}

// Finalize applies defaults, loads environment overrides, and validates
// the configuration.
func (c *RoutesConfig) Finalize() error {
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if v := os.Getenv(EnvRoutesMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if _, err := units.RAMInBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *RoutesConfig) Merge(overlay *RoutesConfig) {
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
}
