package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for dupehound.
// Pointer fields distinguish "unset" from zero values so CLI > local >
// global precedence can be resolved per field.
type FileConfig struct {
	Include     *string `yaml:"include"`
	Exclude     *string `yaml:"exclude"`
	SkipHidden  *bool   `yaml:"skip_hidden"`
	Verbose     *bool   `yaml:"verbose"`
	NoColor     *bool   `yaml:"no_color"`
	LogFile     *string `yaml:"log_file"`
	ClipboardMs *int    `yaml:"clipboard_poll_ms"`

	// ExtensionMappings drives the organize command: folder name -> list of
	// extensions it collects.
	ExtensionMappings map[string][]string `yaml:"extension_mappings"`

	// LastFolders remembers recently used roots per feature.
	LastFolders map[string]string `yaml:"last_folders"`
}

// DefaultMappings mirror the stock organize rules.
func DefaultMappings() map[string][]string {
	return map[string][]string{
		"Images":    {".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg"},
		"Documents": {".pdf", ".docx", ".doc", ".xlsx", ".pptx", ".txt"},
		"Archives":  {".zip", ".rar", ".7z", ".tar", ".gz"},
	}
}

// Mappings returns the configured extension mappings, repaired to the
// defaults when absent or empty.
func (fc FileConfig) Mappings() map[string][]string {
	if len(fc.ExtensionMappings) == 0 {
		return DefaultMappings()
	}
	return fc.ExtensionMappings
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a folder-local config file in the given root.
// It supports .dupehound.yml/.yaml and dupehound.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".dupehound.yml", ".dupehound.yaml", "dupehound.yml", "dupehound.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GlobalPath returns the global config file location, or "" when no home
// directory can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "dupehound", "config.yml")
}

// DataDir returns where dupehound keeps its own files (clipboard history,
// logs, speed CSV).
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".local", "share")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "dupehound")
}

// SaveGlobal writes cfg to the global config path, creating directories as
// needed. Used by the commands that mutate settings (organize rules, last
// folders).
func SaveGlobal(cfg FileConfig) error {
	p := GlobalPath()
	if p == "" {
		return errors.New("no config dir")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}
