package load

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMarker is the marker annotation recognized out of the box.
const DefaultMarker = "Fake"

// titleCaser canonicalizes marker identifiers so that hosts may register
// markers case-insensitively ("fake" and "Fake" are the same marker).
var titleCaser = cases.Title(language.Und, cases.NoLower)

// Registry resolves marker annotations to the generation pipeline.
// Hosts may register their own marker identifiers instead of the fixed
// default; every recognized marker resolves to the same contract pipeline,
// so the registry is a lookup table, not a dispatch hierarchy.
type Registry struct {
	markers map[string]struct{}
}

// NewRegistry returns a registry recognizing the given markers.
// With no arguments it recognizes only DefaultMarker.
func NewRegistry(markers ...string) *Registry {
	r := &Registry{markers: make(map[string]struct{})}
	if len(markers) == 0 {
		markers = []string{DefaultMarker}
	}
	for _, m := range markers {
		r.Register(m)
	}
	return r
}

// Register adds a marker identifier to the registry.
func (r *Registry) Register(marker string) {
	if marker == "" {
		return
	}
	r.markers[canonicalMarker(marker)] = struct{}{}
}

// Recognized reports whether the marker identifier is registered.
func (r *Registry) Recognized(marker string) bool {
	_, ok := r.markers[canonicalMarker(marker)]
	return ok
}

// Matches reports whether the declaration carries at least one
// recognized marker.
func (r *Registry) Matches(d *Declaration) bool {
	for _, m := range d.Markers {
		if r.Recognized(m) {
			return true
		}
	}
	return false
}

// Select returns the declarations carrying a recognized marker,
// preserving input order.
func (r *Registry) Select(decls []*Declaration) []*Declaration {
	var out []*Declaration
	for _, d := range decls {
		if r.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

func canonicalMarker(marker string) string {
	return titleCaser.String(marker)
}
