// Package config holds the tunable settings of the inventory scanner.
//
// The recognition thresholds (binarization rules, count cap, stack list,
// icon similarity floor) are calibrated against one game's UI, so they
// live in a JSON config file rather than in code. Default() matches the
// stock UI; a config file overrides whatever it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/inventory-scan-mcp/internal/count"
	"github.com/ironsheep/inventory-scan-mcp/internal/detection"
)

// Config holds the application configuration.
type Config struct {
	Count  count.Options         `json:"count"`
	Icons  detection.IconOptions `json:"icons"`
	OCR    OCRConfig             `json:"ocr"`
	Server ServerConfig          `json:"server"`
}

// OCRConfig holds configuration for the OCR pipeline.
type OCRConfig struct {
	// Enabled toggles OCR scanning; when false the scanner runs CV-only
	// even on platforms where Tesseract is available.
	Enabled bool `json:"enabled"`

	// Language is the Tesseract language code.
	Language string `json:"language"`
}

// ServerConfig holds configuration for the MCP server process.
type ServerConfig struct {
	// LogLevel is "info" or "debug".
	LogLevel string `json:"log_level"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Count: count.DefaultOptions(),
		Icons: detection.DefaultIconOptions(),
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
		},
		Server: ServerConfig{
			LogLevel: "info",
		},
	}
}

// LoadFromFile loads configuration from a JSON file.
//
// Fields absent from the file keep their defaults, so a config file only
// needs to name what it changes.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a JSON file, creating the directory
// if needed.
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Count.MaxCount < 1 {
		return fmt.Errorf("count.maxCount must be at least 1")
	}
	if c.Count.ConfidenceGate < 0 || c.Count.ConfidenceGate > 1 {
		return fmt.Errorf("count.confidenceGate must be between 0 and 1")
	}
	if c.Count.StackTolerance < 0 {
		return fmt.Errorf("count.stackTolerance must not be negative")
	}
	if c.Count.MinGlyphSimilarity < 0 || c.Count.MinGlyphSimilarity > 1 {
		return fmt.Errorf("count.minGlyphSimilarity must be between 0 and 1")
	}
	if c.Count.OverlayMinFraction < 0 || c.Count.OverlayMinFraction > 1 {
		return fmt.Errorf("count.overlayMinFraction must be between 0 and 1")
	}
	for i := 1; i < len(c.Count.CommonStacks); i++ {
		if c.Count.CommonStacks[i] <= c.Count.CommonStacks[i-1] {
			return fmt.Errorf("count.commonStacks must be strictly ascending")
		}
	}
	if c.Icons.MinSimilarity < 0 || c.Icons.MinSimilarity > 1 {
		return fmt.Errorf("icons.minSimilarity must be between 0 and 1")
	}
	switch c.Server.LogLevel {
	case "", "info", "debug":
	default:
		return fmt.Errorf("server.log_level must be \"info\" or \"debug\"")
	}
	return nil
}

// Path returns the default config file location under the user config
// directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, "inventory-scan-mcp", "config.json"), nil
}
