package load

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the serialized form of a batch of raw declarations, as
// produced by a host front-end or written by hand for the CLI and tests.
type Manifest struct {
	// Markers holds additional marker identifiers to recognize,
	// on top of DefaultMarker.
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`
	// Declarations in file order.
	Declarations []*Declaration `json:"declarations,omitempty" yaml:"declarations,omitempty"`
}

// ParseManifest decodes a YAML (or JSON) manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("load: parse manifest: %w", err)
	}
	for i, d := range m.Declarations {
		if d == nil {
			return nil, fmt.Errorf("load: manifest declaration %d is empty", i)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("load: manifest declaration %d has no name", i)
		}
		if d.Kind == "" {
			d.Kind = KindInterface
		}
	}
	return m, nil
}

// Registry builds the marker registry for the manifest: the default marker
// plus any custom markers declared in the manifest itself.
func (m *Manifest) Registry() *Registry {
	r := NewRegistry()
	for _, marker := range m.Markers {
		r.Register(marker)
	}
	return r
}
