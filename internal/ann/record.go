package ann

import (
	"maps"
	"strings"
)

// Record is one decoded annotation: field name to raw string value.
// A field is absent when the entry ended before its position, and present
// with "" when its token was empty.
type Record map[Field]string

// Get returns the value of f and whether the field was present.
func (r Record) Get(f Field) (string, bool) {
	v, ok := r[f]
	return v, ok
}

// Value returns the value of f, or "" if absent.
func (r Record) Value(f Field) string {
	return r[f]
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// Gene returns the gene name, falling back to the gene ID.
func (r Record) Gene() string {
	if g := r[GeneName]; g != "" {
		return g
	}
	return r[GeneID]
}

// Effects splits a compound effect value on '&'.
// A value without '&' yields a single term.
func Effects(effect string) []string {
	return strings.Split(effect, "&")
}
