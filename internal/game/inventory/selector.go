package inventory

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/event"
)

var (
	// ErrInvalidState is returned when an operation needs an active weapon and
	// the inventory is empty.
	ErrInvalidState = errors.New("inventory: no active weapon")
	// ErrInvalidIndex is returned when a slot index is outside [0, n).
	ErrInvalidIndex = errors.New("inventory: slot index out of range")
)

// WeaponSwitch is the payload of an event.WeaponSwitched event.
type WeaponSwitch struct {
	// Previous is the slot index active before the switch.
	Previous int
	// Current is the slot index active after the switch.
	Current int
	// WeaponID is the instance ID of the newly active weapon.
	WeaponID string
	// Name is the display name of the newly active weapon.
	Name string
}

// Selector owns an entity's weapon slots and keeps exactly one of them active.
//
// Invariant: when len(slots) > 0, 0 <= selected < len(slots) and only
// slots[selected].Enabled is true; when len(slots) == 0 no slot exists and
// nothing is active.
//
// Selector is not safe for concurrent use; the host drives it from a single
// goroutine. Switches are not guarded against reentrancy: a switch-event
// handler that switches again runs that nested switch to completion, publish
// included, before the outer publish reaches its remaining handlers.
type Selector struct {
	slots    []Slot
	selected int
	bus      event.Publisher
	logger   *zap.Logger
}

// NewSelector builds a Selector over weapons, in slot order, and activates slot 0.
// bus receives switch notifications and may be nil.
//
// Precondition: no element of weapons is nil.
// Postcondition: when len(weapons) > 0 slot 0 is the only enabled slot and one
// switch notification has been published.
func NewSelector(weapons []Weapon, bus event.Publisher, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	slots := make([]Slot, len(weapons))
	for i, w := range weapons {
		if w == nil {
			panic(fmt.Sprintf("inventory: NewSelector: weapon in slot %d is nil", i))
		}
		slots[i] = Slot{Weapon: w}
	}
	s := &Selector{slots: slots, bus: bus, logger: logger}
	s.apply(0)
	return s
}

// Len returns the number of slots.
func (s *Selector) Len() int { return len(s.slots) }

// SelectedIndex returns the active slot index. It is 0 on an empty inventory.
func (s *Selector) SelectedIndex() int { return s.selected }

// SelectedWeapon returns the active weapon.
//
// Postcondition: returns ErrInvalidState when the inventory is empty.
func (s *Selector) SelectedWeapon() (Weapon, error) {
	if len(s.slots) == 0 {
		return nil, fmt.Errorf("inventory: Selector.SelectedWeapon: %w", ErrInvalidState)
	}
	return s.slots[s.selected].Weapon, nil
}

// Slots returns a copy of every slot in order.
func (s *Selector) Slots() []SlotView {
	out := make([]SlotView, len(s.slots))
	for i, sl := range s.slots {
		out[i] = SlotView{Index: i, Weapon: sl.Weapon, Enabled: sl.Enabled}
	}
	return out
}

// UseSelected attacks with the active weapon along direction.
// It does nothing on an empty inventory.
func (s *Selector) UseSelected(direction Vec3) {
	if len(s.slots) == 0 {
		return
	}
	s.slots[s.selected].Weapon.Attack(direction)
}

// IncrementIndex activates the next slot, wrapping past the end.
// It does nothing with fewer than two slots.
func (s *Selector) IncrementIndex() {
	n := len(s.slots)
	if n <= 1 {
		return
	}
	s.apply((s.selected + 1) % n)
}

// DecrementIndex activates the previous slot, wrapping before the start.
// It does nothing with fewer than two slots.
func (s *Selector) DecrementIndex() {
	n := len(s.slots)
	if n <= 1 {
		return
	}
	s.apply((s.selected + n - 1) % n)
}

// Select activates slot i. Selecting the already active slot still runs
// the full switch and publishes a notification.
//
// Postcondition: returns ErrInvalidIndex, and changes nothing, unless 0 <= i < Len().
func (s *Selector) Select(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("inventory: Selector.Select(%d) with %d slots: %w", i, len(s.slots), ErrInvalidIndex)
	}
	s.apply(i)
	return nil
}

// SingleFire reports the active weapon's single-fire flag.
func (s *Selector) SingleFire() (bool, error) {
	w, err := s.SelectedWeapon()
	if err != nil {
		return false, err
	}
	return w.SingleFire(), nil
}

// SetSingleFire sets the active weapon's single-fire flag.
//
// Postcondition: returns ErrInvalidState when the inventory is empty.
func (s *Selector) SetSingleFire(single bool) error {
	w, err := s.SelectedWeapon()
	if err != nil {
		return err
	}
	w.SetSingleFire(single)
	return nil
}

// apply performs a switch to i. Callers guarantee 0 <= i < n, or i == 0 when n == 0.
//
// Order: cancel the outgoing reload, move the index, toggle visibility, publish.
func (s *Selector) apply(i int) {
	n := len(s.slots)
	prev := s.selected

	if n > 0 {
		// A reload never survives a switch; re-equipping starts from a clean state.
		if r, ok := AsReloadable(s.slots[prev].Weapon); ok {
			r.SetReloading(false)
		}
	}

	s.selected = i
	if n == 0 {
		return
	}

	for j := range s.slots {
		s.slots[j].Enabled = j == i
	}

	active := s.slots[i].Weapon
	s.logger.Debug("weapon switched",
		zap.Int("previous", prev),
		zap.Int("current", i),
		zap.String("weapon", active.Name()),
	)
	if s.bus != nil {
		s.bus.Publish(event.Event{
			Kind:    event.WeaponSwitched,
			Sender:  s,
			Payload: WeaponSwitch{Previous: prev, Current: i, WeaponID: active.ID(), Name: active.Name()},
		})
	}
}
