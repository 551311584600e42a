package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "techdigest"

// Config holds user-tunable settings. The theme preference is not here: it
// lives in the store next to the saved articles, last write wins.
type Config struct {
	DigestPath string `yaml:"digest_path"`
	Voice      string `yaml:"voice"`
	SpeechRate int    `yaml:"speech_rate"`
	ExportDir  string `yaml:"export_dir"`
	PageWidth  int    `yaml:"page_width"`
	PageHeight int    `yaml:"page_height"`
}

// ResolveExportDir returns the configured export directory, defaulting to
// the user's Downloads directory.
func (c *Config) ResolveExportDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return "."
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// StorePath is the sqlite database holding theme + saved articles.
func StorePath() string {
	return filepath.Join(xdg.DataHome, appName, appName+".db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the default location when path is
// empty. On first run the embedded defaults are written out and used.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.SpeechRate < 0 {
		return fmt.Errorf("speech_rate must be >= 0, got %d", cfg.SpeechRate)
	}
	if cfg.PageWidth < 0 {
		return fmt.Errorf("page_width must be >= 0, got %d", cfg.PageWidth)
	}
	if cfg.PageHeight < 0 {
		return fmt.Errorf("page_height must be >= 0, got %d", cfg.PageHeight)
	}
	return nil
}
