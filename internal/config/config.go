package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects where the note collection lives.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

const (
	defaultLocalDebounceMs  = 300
	defaultRemoteDebounceMs = 0
)

// Remote holds the settings needed to reach a shared record store.
type Remote struct {
	BaseURL   string `yaml:"base_url"`
	TokenFile string `yaml:"token_file"`
}

// Config is the application configuration, loaded from a YAML file with
// sensible defaults for anything omitted.
type Config struct {
	Mode             Mode   `yaml:"mode"`
	DataDir          string `yaml:"data_dir"`
	ExportDir        string `yaml:"export_dir"`
	SearchDebounceMs int    `yaml:"search_debounce_ms"`
	Remote           Remote `yaml:"remote"`

	debounceSet bool
}

// Load reads the config file at path, or falls back to defaults when path
// is empty and no file exists at the default location.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{Mode: ModeLocal}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg.finalize()
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw struct {
		Mode             string `yaml:"mode"`
		DataDir          string `yaml:"data_dir"`
		ExportDir        string `yaml:"export_dir"`
		SearchDebounceMs *int   `yaml:"search_debounce_ms"`
		Remote           Remote `yaml:"remote"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if raw.Mode != "" {
		cfg.Mode = Mode(raw.Mode)
	}
	cfg.DataDir = expandPath(raw.DataDir)
	cfg.ExportDir = expandPath(raw.ExportDir)
	cfg.Remote = Remote{
		BaseURL:   raw.Remote.BaseURL,
		TokenFile: expandPath(raw.Remote.TokenFile),
	}
	if raw.SearchDebounceMs != nil {
		cfg.SearchDebounceMs = *raw.SearchDebounceMs
		cfg.debounceSet = true
	}
	return cfg.finalize()
}

func (c *Config) finalize() (*Config, error) {
	switch c.Mode {
	case ModeLocal, ModeRemote:
	default:
		return nil, fmt.Errorf("unknown mode %q (want local or remote)", c.Mode)
	}
	if c.Mode == ModeRemote && c.Remote.BaseURL == "" {
		return nil, fmt.Errorf("remote mode requires remote.base_url")
	}
	if c.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		c.DataDir = dir
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if !c.debounceSet {
		// Remote collections settle on backend echo, so there is no
		// local churn worth debouncing.
		if c.Mode == ModeRemote {
			c.SearchDebounceMs = defaultRemoteDebounceMs
		} else {
			c.SearchDebounceMs = defaultLocalDebounceMs
		}
	}
	if c.SearchDebounceMs < 0 {
		return nil, fmt.Errorf("search_debounce_ms must not be negative")
	}
	return c, nil
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "smartnotes", "config.yaml"), nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "smartnotes"), nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
