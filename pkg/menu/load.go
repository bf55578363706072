package menu

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v2"
)

// LoadFile reads a menu definition from a YAML file and validates it.
func LoadFile(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML (or JSON) menu definition and validates it.
func Parse(data []byte) (*Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}

	return &m, nil
}
