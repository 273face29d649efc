package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded weapon definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{weapons: make(map[string]*WeaponDef)}
}

// NewRegistryFrom returns a Registry holding defs.
//
// Postcondition: returns an error on the first duplicate ID.
func NewRegistryFrom(defs []*WeaponDef) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterWeapon(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterWeapon adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// IDs returns every registered weapon ID in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.weapons))
	for id := range r.weapons {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// BuildLoadout builds one weapon instance per id, in order. The result is the
// slot order an entity is created with; an empty ids yields an empty loadout.
//
// Postcondition: len(result) == len(ids), or a non-nil error naming the first unknown id.
func (r *Registry) BuildLoadout(ids []string, opts BuildOptions) ([]Weapon, error) {
	out := make([]Weapon, 0, len(ids))
	for i, id := range ids {
		def := r.Weapon(id)
		if def == nil {
			return nil, fmt.Errorf("inventory: Registry.BuildLoadout: slot %d: unknown weapon %q", i, id)
		}
		w, err := NewWeapon(def, opts)
		if err != nil {
			return nil, fmt.Errorf("inventory: Registry.BuildLoadout: slot %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}
