// Package resolve builds and applies the canonical country-name → ISO3 code
// mapping derived from the reference source. The mapping is built once per
// pipeline run before any non-reference source is cleaned, is immutable
// afterward, and is safe for concurrent readers.
//
// A name not present in the mapping (even after normalization) is unresolved.
// Unresolved rows are dropped with a count reported, never coerced to a
// guessed code; the composite key's correctness depends on never inventing
// a code.
package resolve

import "strings"

// ReferenceRow is one (name, code) pair from the reference source, in file
// order.
type ReferenceRow struct {
	Name string
	Code string
}

// Mapping is the immutable country-name → ISO3 mapping.
type Mapping struct {
	codes map[string]string
}

// Build constructs a Mapping from reference rows. Rows with an empty code
// are discarded; rows whose code carries the aggregate prefix are discarded
// (regional and world aggregates are not countries, and admitting one would
// silently capture every row sharing the aggregate's bare name); duplicate
// names keep the first occurrence in file order.
func Build(rows []ReferenceRow, aggregatePrefix string) *Mapping {
	codes := make(map[string]string)
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		code := strings.TrimSpace(row.Code)
		if name == "" || code == "" {
			continue
		}
		if IsAggregate(code, aggregatePrefix) {
			continue
		}
		if _, seen := codes[name]; seen {
			continue
		}
		codes[name] = code
	}
	return &Mapping{codes: codes}
}

// Resolve returns the code for a (normalized) name, or ok=false when the
// name is unresolved.
func (m *Mapping) Resolve(name string) (string, bool) {
	code, ok := m.codes[strings.TrimSpace(name)]
	return code, ok
}

// Len returns the number of mapped names.
func (m *Mapping) Len() int {
	return len(m.codes)
}

// IsAggregate reports whether a code is a synthetic region/world aggregate.
// An empty prefix disables aggregate detection.
func IsAggregate(code, aggregatePrefix string) bool {
	return aggregatePrefix != "" && strings.HasPrefix(code, aggregatePrefix)
}
