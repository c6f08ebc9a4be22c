package profiles

import (
	"fmt"
	"os"

	"github.com/lodestone-labs/relnav/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// profilesFile is the YAML document shape.
type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFromFile reads a YAML profiles file and returns a validated Registry.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	var pf profilesFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing profiles YAML: %w", err)
	}

	if err := validate(pf.Profiles); err != nil {
		return nil, fmt.Errorf("validating profiles: %w", err)
	}

	return newRegistry(pf.Profiles), nil
}

func validate(list []Profile) error {
	seen := make(map[string]bool, len(list))
	for i, p := range list {
		if p.Name == "" {
			return fmt.Errorf("profiles[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("profiles[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true

		if _, err := domain.ParseDialect(p.Dialect); err != nil {
			return fmt.Errorf("profiles[%d] (%s): %w", i, p.Name, err)
		}
		if p.URL == "" && p.Database == "" {
			return fmt.Errorf("profiles[%d] (%s): either url or database is required", i, p.Name)
		}
	}
	return nil
}
