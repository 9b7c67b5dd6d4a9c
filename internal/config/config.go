// Package config loads macfolio settings from defaults, an optional YAML file
// and MACFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daebeom/macfolio/internal/terminal"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "MACFOLIO"

// Config is the top-level application configuration.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Admin    AdminConfig    `mapstructure:"admin" yaml:"admin"`
}

// HTTPConfig controls the portfolio web server.
type HTTPConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr"`
	Mode      string `mapstructure:"mode" yaml:"mode"`
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`
}

// TerminalConfig controls the terminal replay.
type TerminalConfig struct {
	CharInterval time.Duration `mapstructure:"char_interval" yaml:"char_interval"`
	// Script is an optional YAML script path; empty uses the built-in script.
	Script string `mapstructure:"script" yaml:"script"`
}

// AdminConfig controls the stats endpoint.
type AdminConfig struct {
	// Token guards /admin. Empty means one is generated at startup.
	Token string `mapstructure:"token" yaml:"token"`
}

// DefaultAddr is the listen address used when nothing else is configured.
const DefaultAddr = ":8080"

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:      DefaultAddr,
			Mode:      "release",
			StaticDir: "./static",
		},
		Terminal: TerminalConfig{
			CharInterval: terminal.DefaultCharInterval,
		},
	}
}

// LoadScript returns the configured script, or the built-in one.
func (c Config) LoadScript() (terminal.Script, error) {
	if strings.TrimSpace(c.Terminal.Script) == "" {
		return terminal.DefaultScript(), nil
	}
	return terminal.LoadScript(c.Terminal.Script)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("%w: http.addr is required", ErrInvalidConfig)
	}
	switch c.HTTP.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: unsupported http.mode %q", ErrInvalidConfig, c.HTTP.Mode)
	}
	if c.Terminal.CharInterval <= 0 {
		return fmt.Errorf("%w: terminal.char_interval must be positive, got %s", ErrInvalidConfig, c.Terminal.CharInterval)
	}
	return nil
}
