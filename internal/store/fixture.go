package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFixture reads a seed fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fx Fixture
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to decode fixture %s: %w", path, err)
	}
	return &fx, nil
}
