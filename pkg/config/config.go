package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Index     IndexConfig     `mapstructure:"index"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// IndexConfig describes what to scan and where to write the manifest
type IndexConfig struct {
	// Sections are the top-level folders scanned, in output order.
	// They must match the SECTIONS array used by the website.
	Sections []string `mapstructure:"sections"`
	// RootDir is the directory the sections live in (defaults to cwd).
	RootDir string `mapstructure:"root_dir"`
	// OutputFile is the manifest filename, relative to RootDir.
	OutputFile string `mapstructure:"output_file"`
}

// ServerConfig contains preview-server configuration
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal configuration
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Post-process configuration
	if err := postProcess(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Index defaults: must stay in sync with the SECTIONS array in index.html
	viper.SetDefault("index.sections", []string{"syllabus", "notes", "assignments"})
	viper.SetDefault("index.output_file", "files.json")

	// Server defaults
	viper.SetDefault("server.port", 8090)

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	// Environment variable mappings
	viper.BindEnv("index.root_dir", "FILEINDEX_ROOT_DIR")
	viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) error {
	// Set root directory to current directory if not specified
	if cfg.Index.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.Index.RootDir = wd
	}

	// Ensure root directory is absolute
	if !filepath.IsAbs(cfg.Index.RootDir) {
		abs, err := filepath.Abs(cfg.Index.RootDir)
		if err != nil {
			return err
		}
		cfg.Index.RootDir = abs
	}

	if len(cfg.Index.Sections) == 0 {
		return fmt.Errorf("at least one index section must be configured")
	}

	if cfg.Index.OutputFile == "" {
		cfg.Index.OutputFile = "files.json"
	}

	return nil
}
