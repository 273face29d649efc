package inventory

import "github.com/cory-johannsen/armory/internal/game/dice"

// Vec3 is a direction or position in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Weapon is the contract every weapon variant satisfies.
// Callers treat weapons only through this interface and the optional
// capabilities below; attack effects are internal to the variant.
type Weapon interface {
	// ID returns the per-instance identity of the weapon.
	ID() string
	// Name returns the display name.
	Name() string
	// Attack performs the weapon's attack along direction.
	Attack(direction Vec3)
	// SingleFire reports whether the weapon fires once per activation.
	SingleFire() bool
	// SetSingleFire stores the single-fire flag. It has no other side effect.
	SetSingleFire(single bool)
}

// Reloadable is implemented by weapons that have a reload cycle.
// The flag is owned and interpreted by the weapon's own attack logic.
type Reloadable interface {
	Reloading() bool
	SetReloading(reloading bool)
}

// ManualReloader is implemented by reloadable weapons that decide for
// themselves whether a requested reload is needed.
type ManualReloader interface {
	Reload() bool
}

// Ticker is implemented by weapons that advance internal state once per frame.
type Ticker interface {
	Tick()
}

// AsReloadable returns w's reload capability, if it has one.
//
// Postcondition: ok is false and r is nil when w is nil or lacks the capability.
func AsReloadable(w Weapon) (r Reloadable, ok bool) {
	if w == nil {
		return nil, false
	}
	r, ok = w.(Reloadable)
	return r, ok
}

// AsTicker returns w's per-frame capability, if it has one.
func AsTicker(w Weapon) (Ticker, bool) {
	if w == nil {
		return nil, false
	}
	t, ok := w.(Ticker)
	return t, ok
}

// Strike describes one damaging hit produced by an attack.
type Strike struct {
	WeaponID   string
	WeaponName string
	Direction  Vec3
	Damage     dice.RollResult
}

// StrikeFunc receives strikes as weapons produce them. May be nil.
type StrikeFunc func(Strike)
