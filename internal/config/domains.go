package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

type domainsFile struct {
	Domains []string `yaml:"domains"`
}

// LoadDomainsFile reads domain names from a YAML file.
// The file is either a plain sequence of names or a mapping with a "domains" key:
//
//	domains:
//	  - home.example.com
//	  - vpn.example.com
func LoadDomainsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading domains file: %w", err)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var f domainsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing domains file: %w", err)
	}
	return f.Domains, nil
}
