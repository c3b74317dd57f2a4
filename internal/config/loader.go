package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that every process definition is launchable.
func (c *Config) Validate() error {
	if len(c.Processes) == 0 {
		return fmt.Errorf("no processes defined")
	}

	for i, p := range c.Processes {
		if p.Name == "" {
			return fmt.Errorf("process %d: name is required", i)
		}
		if p.Script == "" && p.Dir == "" {
			return fmt.Errorf("process %q: either script or dir is required", p.Name)
		}
	}

	return nil
}
