package merge

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/lifetable/pkg/errors"
)

// overridesFile is the on-disk shape of the display-name override artifact.
type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// ParseOverrides reads a code-keyed display-name override table from YAML
// artifact bytes.
func ParseOverrides(data []byte) (map[string]string, error) {
	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigError("merge", "parsing override table", err)
	}
	return file.Overrides, nil
}

// LoadOverrides reads a code-keyed display-name override table from a YAML
// file.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("merge", "reading override table "+path, err)
	}
	return ParseOverrides(data)
}
