// Package config loads linedemo settings from an optional .env file and
// LINEDEMO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "LINEDEMO"

// Config holds the demo settings. Command-line flags override these.
type Config struct {
	// Scene is the prefab scene to load.
	// Env: LINEDEMO_SCENE (default: demo.yaml)
	Scene string `envconfig:"SCENE" default:"demo.yaml"`

	// Width and Height are the logical screen size.
	Width  int `envconfig:"WIDTH" default:"1280"`
	Height int `envconfig:"HEIGHT" default:"720"`

	// Debug draws endpoint markers and geometry readouts.
	Debug bool `envconfig:"DEBUG" default:"false"`

	// Watch reloads the scene when scene, script or atlas files under
	// WatchDirs change.
	Watch     bool     `envconfig:"WATCH" default:"true"`
	WatchDirs []string `envconfig:"WATCH_DIRS" default:"prefabs,prefabs/scripts,assets"`

	// Gravity is the pendulum gravity in pixels per second squared, +y down.
	Gravity float64 `envconfig:"GRAVITY" default:"900"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadDotEnv loads path (".env" when empty). A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads envFile, then the environment.
func Load(envFile string) (Config, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Scene == "" {
		return errors.New("config: scene is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid screen size %dx%d", c.Width, c.Height)
	}
	return nil
}
