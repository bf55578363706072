package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v2"
)

// LoadFile reads a partial option record from a YAML file.
func LoadFile(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML (or JSON) option record. Nested maps are normalized
// to string keys so they merge as records.
func Parse(data []byte) (Values, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return normalize(raw), nil
}

func normalize(m map[string]any) Values {
	out := make(Values, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(Values, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case map[string]any:
		return normalize(t)
	case []any:
		out := make([]any, len(t))
		for k := range t {
			out[k] = normalizeValue(t[k])
		}
		return out
	default:
		return v
	}
}
