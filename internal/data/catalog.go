package data

import (
	"errors"
	"fmt"
	"log/slog"
)

// LoadCatalog registers the built-in effect, ability and passive definitions.
//
// Duplicates are not fatal: the first registration wins and Register has
// already logged a warning. An invalid definition fails startup.
func LoadCatalog(r *Registry) error {
	var defs []Definition
	for _, d := range effectDefs {
		defs = append(defs, d)
	}
	for _, d := range abilityDefs {
		defs = append(defs, d)
	}
	for _, d := range passiveDefs {
		defs = append(defs, d)
	}
	return RegisterAll(r, defs)
}

// RegisterAll registers a batch of definitions, skipping duplicates.
func RegisterAll(r *Registry, defs []Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			if errors.Is(err, ErrDuplicateDefinition) {
				continue
			}
			return fmt.Errorf("registering %T: %w", def, err)
		}
	}
	return nil
}

// DefaultRegistry builds a frozen registry from the built-in catalog.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := LoadCatalog(r); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	r.Freeze()

	s := r.Summary()
	attrs := []any{"total", s.Total(), "duplicates", s.Duplicates}
	for _, c := range s.Categories {
		attrs = append(attrs, c.Category.String(), c.Count)
	}
	slog.Info("loaded definitions", attrs...)
	return r, nil
}
