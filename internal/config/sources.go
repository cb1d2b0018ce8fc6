package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig declares the Drive spreadsheets the service can analyze
// without an upload. Kept in YAML because teams add and retire sheets
// without redeploying.
type SourcesConfig struct {
	Sources []DriveSource `yaml:"sources"`
}

// DriveSource is one named Drive spreadsheet.
type DriveSource struct {
	Name   string `yaml:"name"` // lookup key, e.g. "leads", "google_ads"
	FileID string `yaml:"file_id"`
	Sheet  string `yaml:"sheet,omitempty"` // preferred worksheet
}

// LoadSources loads the Drive source registry. Path comes from the
// SOURCES_FILE env var, defaulting to "sources.yaml". A missing file is
// not an error, the env-var file IDs still work without it.
func LoadSources() (*SourcesConfig, error) {
	path := getEnv("SOURCES_FILE", "sources.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Lookup finds a Drive source by name. Safe on a nil receiver.
func (c *SourcesConfig) Lookup(name string) (DriveSource, bool) {
	if c == nil {
		return DriveSource{}, false
	}
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return DriveSource{}, false
}
