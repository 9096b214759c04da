package field

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

type schemaFile struct {
	Fields []Field `yaml:"fields"`
}

// LoadSchema reads a field schema seed from a YAML file. The file lists field
// definitions under a top-level "fields" key; see fields.yml in the repo root
// for the shape.
func LoadSchema(path string) ([]Field, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read schema file %s: %w", path, err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("could not parse schema file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(sf.Fields))
	for _, f := range sf.Fields {
		if f.ID == "" || f.Name == "" || f.Type == "" {
			return nil, fmt.Errorf("schema file %s: every field needs id, name and type", path)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("schema file %s: duplicate field id %q", path, f.ID)
		}
		seen[f.ID] = true
	}
	return sf.Fields, nil
}
