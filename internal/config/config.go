package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "captionkit"

// Environment overrides, applied after the file is read.
const (
	EnvAPIKey   = "CAPTIONKIT_API_KEY"
	EnvProvider = "CAPTIONKIT_PROVIDER"
	EnvModel    = "CAPTIONKIT_MODEL"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Language is the local language written on line 1 of every caption.
	Language string `yaml:"language"`
	Vibe     string `yaml:"vibe"`
	Length   string `yaml:"length"`

	// Profile names the business profile used for context, if any.
	Profile     string `yaml:"profile,omitempty"`
	ProfilesDir string `yaml:"profiles_dir,omitempty"`

	History HistoryConfig `yaml:"history"`
	LogFile string        `yaml:"log_file,omitempty"`
}

// HistoryConfig selects where finished captions are recorded.
type HistoryConfig struct {
	Driver string `yaml:"driver"` // file | postgres | none
	Path   string `yaml:"path,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

const (
	HistoryFile     = "file"
	HistoryPostgres = "postgres"
	HistoryNone     = "none"
)

func DefaultConfig() *Config {
	return &Config{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Language: "Indonesian",
		Vibe:     "casual",
		Length:   "medium",
		History: HistoryConfig{
			Driver: HistoryFile,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file. A missing file yields nil, nil so the caller
// can run first-time setup.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.fillPaths(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overlays the CAPTIONKIT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvProvider)); v != "" {
		c.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		c.Model = v
	}
}

// Validate reports settings that would make every call fail.
func (c *Config) Validate() error {
	info := GetProvider(c.Provider)
	if info == nil {
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if info.NeedsAPIKey && c.APIKey == "" {
		return fmt.Errorf("%s requires an API key (set %s)", info.ID, EnvAPIKey)
	}
	if info.ID == "custom" && c.BaseURL == "" {
		return fmt.Errorf("custom provider requires base_url")
	}
	switch c.History.Driver {
	case "", HistoryFile, HistoryNone:
	case HistoryPostgres:
		if c.History.DSN == "" {
			return fmt.Errorf("postgres history requires history.dsn")
		}
	default:
		return fmt.Errorf("unknown history driver: %s", c.History.Driver)
	}
	return nil
}

// fillPaths anchors unset file locations in dir.
func (c *Config) fillPaths(dir string) error {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return err
		}
	}
	if c.ProfilesDir == "" {
		c.ProfilesDir = filepath.Join(dir, "profiles")
	}
	if c.History.Driver == "" {
		c.History.Driver = HistoryFile
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(dir, "history.yaml")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, appName+".log")
	}
	return nil
}

// WithDefaults returns a copy with every unset path filled in relative to
// the standard config directory.
func (c *Config) WithDefaults() (*Config, error) {
	out := *c
	if err := out.fillPaths(""); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
