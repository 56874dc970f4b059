package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Lookup for an unknown collection name.
var ErrNotFound = errors.New("collection not found")

// Access tiers. Tiers above TierGeneral restrict who may operate on the
// collection; the authorization engine owns the tier -> role mapping.
const (
	TierAdmin       = "admin"
	TierHR          = "hr"
	TierFinance     = "finance"
	TierProcurement = "procurement"
	TierCustomer    = "customer"
	TierGeneral     = "general"
)

// CollectionSchema describes one record collection. Immutable at runtime.
type CollectionSchema struct {
	Name     string
	Required []string
	Optional []string
	// Derived fields are required in the stored document but assigned by
	// the store (or a downstream process), so slot filling never asks the
	// user for them.
	Derived []string
	Tier    string
}

// Sensitive reports whether the collection requires an explicit role
// allow-list for access.
func (s *CollectionSchema) Sensitive() bool {
	switch s.Tier {
	case TierAdmin, TierHR, TierFinance, TierProcurement:
		return true
	}
	return false
}

// HasField reports whether the field belongs to the collection's
// required or optional set.
func (s *CollectionSchema) HasField(name string) bool {
	for _, f := range s.Required {
		if f == name {
			return true
		}
	}
	for _, f := range s.Optional {
		if f == name {
			return true
		}
	}
	return false
}

func (s *CollectionSchema) derived(name string) bool {
	for _, f := range s.Derived {
		if f == name {
			return true
		}
	}
	return false
}

// Fields returns required followed by optional field names.
func (s *CollectionSchema) Fields() []string {
	out := make([]string, 0, len(s.Required)+len(s.Optional))
	out = append(out, s.Required...)
	out = append(out, s.Optional...)
	return out
}

// Registry is the closed, statically loaded catalog of collection schemas.
// Read-only after construction and safe for concurrent use.
type Registry struct {
	byName map[string]*CollectionSchema
}

// NewRegistry builds a registry from explicit definitions.
func NewRegistry(defs ...CollectionSchema) *Registry {
	r := &Registry{byName: make(map[string]*CollectionSchema, len(defs))}
	for i := range defs {
		d := defs[i]
		if d.Tier == "" {
			d.Tier = TierGeneral
		}
		r.byName[d.Name] = &d
	}
	return r
}

// Default returns a registry loaded with the full collection catalog.
func Default() *Registry {
	return NewRegistry(catalog...)
}

// Lookup resolves a collection by name.
func (r *Registry) Lookup(name string) (*CollectionSchema, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}

// Names returns all collection names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MissingRequired returns the required fields of a collection that are not
// yet present in collected, skipping store-derived fields. The result is
// sorted in the schema's declaration order so re-prompts are stable.
func (r *Registry) MissingRequired(name string, collected map[string]string) ([]string, error) {
	s, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, f := range s.Required {
		if s.derived(f) {
			continue
		}
		if v, ok := collected[f]; !ok || v == "" {
			missing = append(missing, f)
		}
	}
	return missing, nil
}

// ValidateField checks a candidate value against the field's rule.
// Unknown fields are rejected so callers never store them.
func (r *Registry) ValidateField(collection, field, value string) error {
	s, err := r.Lookup(collection)
	if err != nil {
		return err
	}
	if !s.HasField(field) {
		return &ValidationError{Field: field, Hint: "field does not belong to this collection"}
	}
	return RuleFor(field).Validate(field, value)
}
