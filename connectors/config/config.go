package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	dc "demography-stats/domain/config"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "./config.yml"

// Path resolves the config file location from the environment.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load parses the YAML configuration file at path and applies defaults.
func Load(path string) (*dc.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c dc.Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c = c.Defaults()
	if err := Validate(&c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// LoadOrDefault behaves like Load but falls back to built-in defaults when
// the file does not exist.
func LoadOrDefault(path string) (*dc.Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("config.default", "path", path)
		d := dc.Config{}.Defaults()
		return &d, nil
	}
	return c, err
}

// Validate checks that the indicator list is usable.
func Validate(c *dc.Config) error {
	seen := map[string]bool{}
	refs := 0
	for i, ind := range c.Indicators {
		label := strings.TrimSpace(ind.Label)
		if label == "" {
			return fmt.Errorf("indicators[%d]: label is required", i)
		}
		if strings.TrimSpace(ind.File) == "" {
			return fmt.Errorf("indicator %q: file is required", label)
		}
		if seen[label] {
			return fmt.Errorf("indicator %q declared twice", label)
		}
		seen[label] = true
		switch ind.Kind {
		case dc.KindPopulation, dc.KindHousing, dc.KindInvestment:
		default:
			return fmt.Errorf("indicator %q: unknown kind %q", label, ind.Kind)
		}
		if ind.Reference {
			refs++
		}
	}
	if refs != 1 {
		return fmt.Errorf("exactly one reference indicator is required, got %d", refs)
	}
	if len([]rune(c.Delimiter)) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}
