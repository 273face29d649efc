package inventory_test

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/armory/internal/game/dice"
	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// pistolDef returns a valid firearm WeaponDef for use in tests.
func pistolDef() *inventory.WeaponDef {
	return &inventory.WeaponDef{
		ID:               "service_pistol",
		Name:             "Service Pistol",
		Kind:             inventory.WeaponKindFirearm,
		DamageDice:       "2d6",
		SingleFire:       true,
		MagazineCapacity: 4,
		ReloadFrames:     3,
		AutoRounds:       2,
	}
}

// knifeDef returns a valid melee WeaponDef for use in tests.
func knifeDef() *inventory.WeaponDef {
	return &inventory.WeaponDef{
		ID:         "combat_knife",
		Name:       "Combat Knife",
		Kind:       inventory.WeaponKindMelee,
		DamageDice: "1d6",
	}
}

// buildOpts returns BuildOptions with a fixed-roll dice source and a strike recorder.
func buildOpts(t *testing.T, strikes *[]inventory.Strike) inventory.BuildOptions {
	logger := zaptest.NewLogger(t)
	return inventory.BuildOptions{
		Roller: dice.NewRoller(&dice.FixedSource{Values: []int{2}}, logger),
		OnStrike: func(s inventory.Strike) {
			if strikes != nil {
				*strikes = append(*strikes, s)
			}
		},
		Logger: logger,
	}
}

// fakeWeapon records attacks and stores its single-fire flag.
type fakeWeapon struct {
	id      string
	single  bool
	attacks []inventory.Vec3
}

func (f *fakeWeapon) ID() string                      { return f.id }
func (f *fakeWeapon) Name() string                    { return f.id }
func (f *fakeWeapon) Attack(direction inventory.Vec3) { f.attacks = append(f.attacks, direction) }
func (f *fakeWeapon) SingleFire() bool                { return f.single }
func (f *fakeWeapon) SetSingleFire(single bool)       { f.single = single }

// fakeReloadable adds the reload capability to fakeWeapon.
type fakeReloadable struct {
	fakeWeapon
	reloading bool
}

func (f *fakeReloadable) Reloading() bool             { return f.reloading }
func (f *fakeReloadable) SetReloading(reloading bool) { f.reloading = reloading }

// fakeWeapons returns n plain fake weapons named w0..w(n-1).
func fakeWeapons(n int) []inventory.Weapon {
	out := make([]inventory.Weapon, n)
	for i := range out {
		out[i] = &fakeWeapon{id: fmt.Sprintf("w%d", i)}
	}
	return out
}

// switchRecorder subscribes to weapon switches on a fresh bus.
type switchRecorder struct {
	bus    *event.Bus
	events []event.Event
}

func newSwitchRecorder() *switchRecorder {
	r := &switchRecorder{bus: event.NewBus()}
	r.bus.Subscribe(event.WeaponSwitched, func(ev event.Event) { r.events = append(r.events, ev) })
	return r
}

func (r *switchRecorder) reset() { r.events = nil }

func zapNop() *zap.Logger { return zap.NewNop() }
