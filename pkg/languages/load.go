package languages

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Definition is one entry of a language file, in the linguist layout:
//
//	Go:
//	  extensions: [".go"]
type Definition struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
}

// Parse decodes a language file into an extension map suitable for
// Table.With. When two languages claim the same extension, the one that sorts
// first by name wins so the result does not depend on map iteration order.
func Parse(r io.Reader) (map[string]string, error) {
	var defs map[string]Definition
	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error parsing language definitions: %w", err)
	}

	extensions := make(map[string]string)
	owners := make(map[string]string)
	for name, def := range defs {
		for _, ext := range def.Extensions {
			key := normalizeExt(ext)
			if key == "" {
				continue
			}
			if prev, ok := owners[key]; ok && prev < name {
				continue
			}
			owners[key] = name
			extensions[key] = name
		}
	}
	return extensions, nil
}

// LoadFile reads and parses a language file from fsys.
func LoadFile(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}
	defer f.Close()

	extensions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return extensions, nil
}
