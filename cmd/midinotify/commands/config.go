package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/midinotify/midinotify-go/internal/hostsim"
)

// SimulateConfig is the YAML configuration for the simulate command.
type SimulateConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Capture is the path of the capture file to append to. Empty disables capture.
	Capture string `yaml:"capture"`

	// CaptureConsole also prints capture events through slog at debug level.
	CaptureConsole bool `yaml:"capture_console"`

	// MetricsAddr serves Prometheus metrics after the script ran, until
	// interrupted. Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	// Script is the sequence of host actions to simulate.
	Script hostsim.Script `yaml:"script"`
}

// DefaultLogLevel is used when log_level is omitted.
const DefaultLogLevel = "info"

// LoadSimulateConfig reads and validates a configuration file.
func LoadSimulateConfig(path string) (*SimulateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseSimulateConfig(data)
}

// ParseSimulateConfig parses and validates configuration bytes.
func ParseSimulateConfig(data []byte) (*SimulateConfig, error) {
	cfg := &SimulateConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *SimulateConfig) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Script.Steps) == 0 {
		return errors.New("config: script has no steps")
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
}
