package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"battery-analyzer/internal/types"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.toml
var defaultConfig []byte

// Environment variables overriding file settings
const (
	EnvListen      = "BA_LISTEN"
	EnvInterpreter = "BA_INTERPRETER"
	EnvScript      = "BA_SCRIPT"
	EnvLogLevel    = "BA_LOG_LEVEL"
)

// Config is the application configuration
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	Launcher struct {
		Interpreter string `yaml:"interpreter"`
		Script      string `yaml:"script"`
	} `yaml:"launcher"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	// Defaults pre-fills the UI form; it is never applied to a submitted run
	Defaults types.ProcessConfig `yaml:"defaults"`
}

// Default returns the embedded configuration
func Default() (*Config, error) {
	var cfg Config

	err := toml.Unmarshal(defaultConfig, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}

	return &cfg, nil
}

// Load builds the configuration from the embedded defaults, the optional file at path,
// a .env file in the working directory and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		err = cfg.overlayFile(path)
		if err != nil {
			return nil, err
		}
	}

	err = godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.applyEnv(os.Getenv)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file type %q (allowed: .toml, .yaml, .yml)", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvListen); v != "" {
		c.Server.Listen = v
	}

	if v, ok := lookup(getenv, EnvInterpreter); ok {
		c.Launcher.Interpreter = v
	}

	if v := getenv(EnvScript); v != "" {
		c.Launcher.Script = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// lookup treats "-" as an explicit empty value, so the interpreter can be disabled from the environment
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}

	if v == "-" {
		return "", true
	}

	return v, true
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Listen) == "" {
		return errors.New("config: Server.Listen must not be empty")
	}

	if strings.TrimSpace(c.Launcher.Script) == "" {
		return errors.New("config: Launcher.Script must not be empty")
	}

	_, err := c.LogLevel()

	return err
}

// LogLevel parses Log.Level (debug, info, warn, error)
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Log.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid Log.Level %q: %w", c.Log.Level, err)
	}

	return level, nil
}
