package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the configuration file name looked up in a project directory.
const ProjectFile = "tour.yaml"

// Load reads a project spec from a YAML file and applies defaults.
// Relative paths inside the spec resolve against the file's directory.
func Load(path string) (*ProjectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	var spec ProjectSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing spec YAML: %w", err)
	}

	spec.dir = filepath.Dir(path)
	spec.ApplyDefaults()
	return &spec, nil
}

// LoadProject loads a project spec from a project directory.
// It looks for tour.yaml in the given directory.
func LoadProject(projectDir string) (*ProjectSpec, error) {
	specPath := filepath.Join(projectDir, ProjectFile)
	return Load(specPath)
}
