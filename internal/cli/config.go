package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the fastlyctl configuration.
type Config struct {
	APIKey       string `yaml:"api_key" json:"api_key"`
	APIEndpoint  string `yaml:"api_endpoint" json:"api_endpoint"`
	User         string `yaml:"user" json:"user"`
	Password     string `yaml:"password" json:"password"`
	OutputFormat string `yaml:"output_format" json:"output_format"`
}

// DefaultConfigPath returns the default config file path: ~/.fastlyctl.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fastlyctl.yaml"
	}
	return filepath.Join(home, ".fastlyctl.yaml")
}

// LoadConfig reads the configuration from the given YAML file path. A
// missing file is not an error: flags and environment can supply
// everything.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		OutputFormat: "table",
	}

	// The file holds credentials, so warn when other users can read it.
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.APIKey = os.Getenv("FASTLY_API_KEY")
			return cfg, nil
		}
		return nil, err
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		fmt.Fprintf(os.Stderr,
			"warning: config file %s has permissions %04o, expected 0600\n",
			path, perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("FASTLY_API_KEY")
	}

	return cfg, nil
}
