package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadFile reads a YAML persona catalog. An empty path yields the built-in seed.
func LoadFile(path string) ([]Persona, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Seed(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML persona catalog.
func Parse(raw []byte) ([]Persona, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode persona catalog: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, errors.New("persona catalog is empty")
	}

	seen := make(map[string]struct{}, len(file.Personas))
	for i, p := range file.Personas {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("persona #%d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate persona id %q", id)
		}
		if strings.TrimSpace(p.Prompt) == "" && strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("persona %q needs a prompt or a name", id)
		}
		seen[id] = struct{}{}
		file.Personas[i].ID = id
	}
	return file.Personas, nil
}
