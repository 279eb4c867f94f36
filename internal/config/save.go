package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config back to the file it was loaded from, or to the
// user's config directory. It returns the path written.
func (c *Config) Save() (string, error) {
	path := c.path
	if path == "" {
		path = filepath.Join(ConfigDir(), FileName)
	}
	if err := c.SaveTo(path); err != nil {
		return "", err
	}
	c.path = path
	return path, nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
