// Package config holds the environment defaults for the bbml command.
// Flags override everything here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/edlearn/bbml/layout"
)

type Config struct {
	// Width is the target layout width; 0 means use the terminal width.
	Width int

	// Color is one of "auto", "always", "never".
	Color string

	// Indent is the columns of indentation per list nesting level.
	Indent int
}

func Load() Config {
	cfg := Config{
		Width:  envInt("BBML_WIDTH", 0),
		Color:  envOr("BBML_COLOR", "auto"),
		Indent: envInt("BBML_INDENT", layout.DefaultConfig.Indent),
	}

	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Indent < 0 {
		cfg.Indent = layout.DefaultConfig.Indent
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("BBML_COLOR must be auto, always or never, got %q", c.Color)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
