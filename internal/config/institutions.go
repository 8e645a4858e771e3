package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type institutionsFile struct {
	Institutions []string `yaml:"institutions"`
}

// LoadInstitutions resolves the institution list: INSTITUTIONS wins, then
// INSTITUTIONS_FILE. A nil result means neither is set and the caller should
// use its defaults.
func (v *ValidationConfig) LoadInstitutions() ([]string, error) {
	if len(v.Institutions) > 0 {
		return v.Institutions, nil
	}
	if v.InstitutionsFile == "" {
		return nil, nil
	}
	return ReadInstitutionsFile(v.InstitutionsFile)
}

// ReadInstitutionsFile reads an institutions YAML document from path
func ReadInstitutionsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read institutions file: %w", err)
	}

	var doc institutionsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse institutions file %s: %w", path, err)
	}

	names := make([]string, 0, len(doc.Institutions))
	for _, name := range doc.Institutions {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("institutions file %s lists no institutions", path)
	}
	return names, nil
}
