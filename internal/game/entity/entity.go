// Package entity provides the game entity that hosts a weapon selector.
package entity

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// Entity owns a weapon slot collection through its Selector.
// The slot collection lives and dies with the entity.
type Entity struct {
	id       string
	name     string
	selector *inventory.Selector
	logger   *zap.Logger
}

// New creates an entity holding weapons in slot order and activates slot 0.
//
// Precondition: logger must be non-nil; no element of weapons is nil.
// Postcondition: Selector().SelectedIndex() == 0.
func New(name string, weapons []inventory.Weapon, bus event.Publisher, logger *zap.Logger) *Entity {
	id := uuid.NewString()
	l := logger.With(zap.String("entity", name), zap.String("entity_id", id))
	e := &Entity{
		id:       id,
		name:     name,
		selector: inventory.NewSelector(weapons, bus, l),
		logger:   l,
	}
	l.Debug("entity created", zap.Int("weapons", len(weapons)))
	return e
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() string { return e.id }

// Name returns the entity's display name.
func (e *Entity) Name() string { return e.name }

// Selector returns the entity's weapon selector.
func (e *Entity) Selector() *inventory.Selector { return e.selector }

// Tick advances per-frame weapon state. Every held weapon ticks, active or not.
func (e *Entity) Tick() {
	for _, slot := range e.selector.Slots() {
		if t, ok := inventory.AsTicker(slot.Weapon); ok {
			t.Tick()
		}
	}
}

// Reload starts a reload on the active weapon.
//
// Postcondition: returns false when there is no active weapon, it cannot
// reload, or a reload is already running or unnecessary.
func (e *Entity) Reload() bool {
	w, err := e.selector.SelectedWeapon()
	if err != nil {
		return false
	}
	if f, ok := w.(inventory.ManualReloader); ok {
		return f.Reload()
	}
	r, ok := inventory.AsReloadable(w)
	if !ok || r.Reloading() {
		return false
	}
	r.SetReloading(true)
	return true
}
