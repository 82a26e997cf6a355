// SPDX-License-Identifier: MPL-2.0

package ecosystem

import "fmt"

// Registry holds the known ecosystems keyed by name.
type Registry struct {
	byName map[string]Ecosystem
	order  []string
}

// NewRegistry returns a registry with the built-ins plus the given
// definitions. A definition may not reuse a built-in name.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{byName: make(map[string]Ecosystem)}
	for _, e := range Builtins() {
		r.add(e)
	}
	for _, d := range defs {
		if _, exists := r.byName[d.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEcosystem, d.Name)
		}
		e, err := d.Build()
		if err != nil {
			return nil, err
		}
		r.add(e)
	}
	return r, nil
}

func (r *Registry) add(e Ecosystem) {
	r.byName[e.Name] = e
	r.order = append(r.order, e.Name)
}

// Get returns the ecosystem with the given name.
func (r *Registry) Get(name string) (Ecosystem, error) {
	e, ok := r.byName[name]
	if !ok {
		return Ecosystem{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownEcosystem, name, r.order)
	}
	return e, nil
}

// Resolve maps names to ecosystems in the given order. Duplicates keep their
// first position. An empty list resolves to the built-ins in Rust, Python, Go
// order followed by any user-defined ecosystems.
func (r *Registry) Resolve(names []string) ([]Ecosystem, error) {
	if len(names) == 0 {
		names = r.order
	}
	seen := make(map[string]bool, len(names))
	out := make([]Ecosystem, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		e, err := r.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
