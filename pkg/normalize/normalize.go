// Package normalize applies a fixed lexical correction table to free-text
// country names before entity resolution. The table is a versioned
// configuration artifact, not logic: it ships as an embedded YAML default and
// can be replaced with an external file without touching merge code.
//
// A name absent from the table passes through verbatim (after whitespace
// trimming); unresolved values are a resolver concern, not a normalizer
// concern.
package normalize

import (
	_ "embed"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/lifetable/pkg/errors"
)

//go:embed corrections.yaml
var embeddedCorrections []byte

// correctionsFile is the on-disk shape of the correction artifact.
type correctionsFile struct {
	Corrections map[string]string `yaml:"corrections"`
}

// Normalizer substitutes known synonymous, obsolete, or misspelled name
// forms with their canonical spelling. Immutable after construction and safe
// for concurrent use.
type Normalizer struct {
	corrections map[string]string
}

// New creates a Normalizer over the given correction table. The map is
// copied; later mutation of the argument has no effect.
func New(corrections map[string]string) *Normalizer {
	table := make(map[string]string, len(corrections))
	for from, to := range corrections {
		table[from] = to
	}
	return &Normalizer{corrections: table}
}

// Default returns a Normalizer built from the embedded correction table.
func Default() *Normalizer {
	n, err := Parse(embeddedCorrections)
	if err != nil {
		// The embedded artifact is compiled in and validated by tests.
		panic(err)
	}
	return n
}

// Parse builds a Normalizer from YAML artifact bytes.
func Parse(data []byte) (*Normalizer, error) {
	var file correctionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigError("normalize", "parsing correction table", err)
	}
	return New(file.Corrections), nil
}

// Load builds a Normalizer from a YAML artifact on disk.
func Load(path string) (*Normalizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("normalize", "reading correction table "+path, err)
	}
	return Parse(data)
}

// Apply trims surrounding whitespace and substitutes the canonical form if
// the name is a known variant; otherwise the trimmed input is returned
// unchanged.
func (n *Normalizer) Apply(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := n.corrections[name]; ok {
		return canonical
	}
	return name
}

// Known reports whether the (trimmed) name is a listed variant. Cleaners use
// this to count how many raw rows were corrected.
func (n *Normalizer) Known(name string) bool {
	_, ok := n.corrections[strings.TrimSpace(name)]
	return ok
}

// Len returns the number of listed variants.
func (n *Normalizer) Len() int {
	return len(n.corrections)
}
