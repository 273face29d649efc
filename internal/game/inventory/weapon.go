// Package inventory provides the weapon capability contract, the weapon
// variants an entity can carry, and the Selector that keeps exactly one of
// them active.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armory/internal/game/dice"
)

// WeaponKind selects the variant a WeaponDef builds.
type WeaponKind string

const (
	// WeaponKindMelee builds a MeleeWeapon.
	WeaponKindMelee WeaponKind = "melee"
	// WeaponKindFirearm builds a reloadable Firearm.
	WeaponKindFirearm WeaponKind = "firearm"
)

// DefaultAutoRounds is the rounds fired per attack in continuous mode when
// a firearm definition does not set auto_rounds.
const DefaultAutoRounds = 3

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	Kind             WeaponKind `yaml:"kind"`
	DamageDice       string     `yaml:"damage_dice"`
	SingleFire       bool       `yaml:"single_fire"`
	MagazineCapacity int        `yaml:"magazine_capacity"` // firearms only
	ReloadFrames     int        `yaml:"reload_frames"`     // firearms only
	AutoRounds       int        `yaml:"auto_rounds"`       // 0 = DefaultAutoRounds
}

// RoundsPerBurst returns the rounds fired per attack in continuous mode.
func (w *WeaponDef) RoundsPerBurst() int {
	if w.AutoRounds > 0 {
		return w.AutoRounds
	}
	return DefaultAutoRounds
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if _, err := dice.Parse(w.DamageDice); err != nil {
		errs = append(errs, err)
	}
	switch w.Kind {
	case WeaponKindMelee:
	case WeaponKindFirearm:
		if w.MagazineCapacity <= 0 {
			errs = append(errs, errors.New("firearm MagazineCapacity must be > 0"))
		}
		if w.ReloadFrames < 0 {
			errs = append(errs, errors.New("firearm ReloadFrames must be >= 0"))
		}
		if w.AutoRounds < 0 {
			errs = append(errs, errors.New("firearm AutoRounds must be >= 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown Kind %q", w.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %w", w.ID, errors.Join(errs...))
	}
	return nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice in directory order.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var weapons []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}
