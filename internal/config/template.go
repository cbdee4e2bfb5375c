package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// mappingTemplate is the shareable subset of the config: just the organize
// rules, so teams can swap rule sets without touching personal settings.
type mappingTemplate struct {
	ExtensionMappings map[string][]string `yaml:"extension_mappings"`
}

// ExportTemplate writes the current extension mappings to path.
func ExportTemplate(cfg FileConfig, path string) error {
	b, err := yaml.Marshal(mappingTemplate{ExtensionMappings: cfg.Mappings()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// ImportTemplate reads extension mappings from path into cfg.
func ImportTemplate(cfg *FileConfig, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var t mappingTemplate
	if err := yaml.Unmarshal(b, &t); err != nil {
		return err
	}
	if len(t.ExtensionMappings) == 0 {
		return errors.New("template has no extension_mappings")
	}
	cfg.ExtensionMappings = t.ExtensionMappings
	return nil
}
