// Package config holds all crack configuration: the board definition, the
// solver knobs, logging, and UI preferences. Configuration is read once at
// startup from an optional YAML file, overridden by environment variables,
// then validated.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"codecrack/internal/game"
)

// Config holds all crack configuration.
type Config struct {
	// Game is the board being played.
	Game GameConfig `yaml:"game"`

	// Solver tunes analysis and plan construction.
	Solver SolverConfig `yaml:"solver"`

	// Logging controls the structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// UI controls terminal rendering.
	UI UIConfig `yaml:"ui"`
}

// GameConfig selects the board definition.
type GameConfig struct {
	Definition game.Definition `yaml:"definition"`
}

// SolverConfig tunes the solving pipeline.
type SolverConfig struct {
	// Workers used to fill the response matrix. 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0,lte=256"`

	// UniquePremise assumes the secret answers uniquely, the physical
	// game's promise. The play command turns this on by default.
	UniquePremise bool `yaml:"unique_premise"`
}

// LoggingConfig controls the zap logger built at startup.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	// File receives the log stream; empty means stderr.
	File string `yaml:"file"`
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	// NoColor disables all styling; also forced when stdout is not a
	// terminal or NO_COLOR is set.
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns the classic game with quiet logging.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Definition: game.ClassicDefinition(),
		},
		Solver: SolverConfig{
			Workers:       0,
			UniquePremise: false,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		UI: UIConfig{},
	}
}

// Load reads configuration from a YAML file layered over the defaults. A
// missing file is not an error: defaults plus environment apply. An empty
// path checks the default location (~/.config/crack/config.yaml).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "crack", "config.yaml")
}

// applyEnvOverrides layers environment variables over the file values.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("CRACK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("CRACK_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if workers := os.Getenv("CRACK_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n >= 0 {
			c.Solver.Workers = n
		}
	}
	if os.Getenv("CRACK_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}
}

var validate = validator.New()

// Validate checks field constraints and the board definition.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Game.Definition.Validate(); err != nil {
		return err
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
