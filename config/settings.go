package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// SettingsFileName is looked up in the working directory and the user's home
// directory when no settings path is given.
const SettingsFileName = ".trellokeep.yaml"

// Settings holds optional defaults loaded from a YAML file. Command-line
// flags take precedence over all of these.
type Settings struct {
	Board        string   `yaml:"board"`
	Lists        []string `yaml:"lists"`
	Format       string   `yaml:"format"`
	Title        string   `yaml:"title"`
	Credentials  string   `yaml:"credentials"`
	Impersonate  string   `yaml:"impersonate"`
	Provider     string   `yaml:"provider"`
	Model        string   `yaml:"model"`
	Instructions string   `yaml:"instructions"`
	LogLevel     string   `yaml:"log_level"`
}

// LoadSettings reads a settings file. Unknown keys are rejected so typos
// surface instead of being silently ignored.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}
	var settings Settings
	if err := yaml.UnmarshalWithOptions(data, &settings, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("error parsing settings file %s: %w", path, err)
	}
	return &settings, nil
}

// FindSettings returns the path of the nearest settings file, checking the
// working directory then the home directory. Returns an empty string when no
// settings file exists.
func FindSettings() string {
	if _, err := os.Stat(SettingsFileName); err == nil {
		return SettingsFileName
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, SettingsFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
