package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Config holds the editor's settings. YAML values are read first; any
// LEVELEDITOR_* environment variable that is set wins.
type Config struct {
	AssetsDir       string `yaml:"assets_dir" env:"LEVELEDITOR_ASSETS_DIR"`
	ProjectsDir     string `yaml:"projects_dir" env:"LEVELEDITOR_PROJECTS_DIR"`
	DefaultSimplify int    `yaml:"default_simplify" env:"LEVELEDITOR_DEFAULT_SIMPLIFY"`
	CloseHitboxLoop bool   `yaml:"close_hitbox_loop" env:"LEVELEDITOR_CLOSE_HITBOX_LOOP"`
	WatchAssets     bool   `yaml:"watch_assets" env:"LEVELEDITOR_WATCH_ASSETS"`
	Window          Window `yaml:"window" envPrefix:"LEVELEDITOR_WINDOW_"`
}

type Window struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

// Default returns the built-in settings.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load layers the file at path over the defaults, then applies environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: load %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DefaultSimplify < 0 {
		return fmt.Errorf("config: default_simplify must not be negative, got %d", c.DefaultSimplify)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
