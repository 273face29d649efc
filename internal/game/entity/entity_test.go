package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/armory/internal/game/dice"
	"github.com/cory-johannsen/armory/internal/game/entity"
	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

func testWeapons(t *testing.T) (*inventory.Firearm, *inventory.MeleeWeapon) {
	logger := zaptest.NewLogger(t)
	opts := inventory.BuildOptions{
		Roller: dice.NewRoller(dice.NewSeededSource(7), logger),
		Logger: logger,
	}
	pistol, err := inventory.NewFirearm(&inventory.WeaponDef{
		ID: "pistol", Name: "Pistol", Kind: inventory.WeaponKindFirearm,
		DamageDice: "1d8", SingleFire: true, MagazineCapacity: 2, ReloadFrames: 2,
	}, opts)
	require.NoError(t, err)
	knife, err := inventory.NewMeleeWeapon(&inventory.WeaponDef{
		ID: "knife", Name: "Knife", Kind: inventory.WeaponKindMelee, DamageDice: "1d4",
	}, opts)
	require.NoError(t, err)
	return pistol, knife
}

func TestNew_ActivatesFirstSlotAndPublishes(t *testing.T) {
	pistol, knife := testWeapons(t)
	bus := event.NewBus()
	published := 0
	bus.Subscribe(event.WeaponSwitched, func(event.Event) { published++ })

	e := entity.New("scout", []inventory.Weapon{pistol, knife}, bus, zaptest.NewLogger(t))
	assert.NotEmpty(t, e.ID())
	assert.Equal(t, "scout", e.Name())
	w, err := e.Selector().SelectedWeapon()
	require.NoError(t, err)
	assert.Same(t, pistol, w)
	assert.Equal(t, 1, published)
}

func TestTick_AdvancesReloadOnEveryWeapon(t *testing.T) {
	pistol, knife := testWeapons(t)
	e := entity.New("scout", []inventory.Weapon{pistol, knife}, nil, zaptest.NewLogger(t))

	e.Selector().UseSelected(inventory.Vec3{Z: 1})
	e.Selector().UseSelected(inventory.Vec3{Z: 1})
	require.True(t, pistol.Reloading())

	e.Tick()
	e.Tick()
	assert.False(t, pistol.Reloading())
	assert.Equal(t, 2, pistol.Loaded())
}

func TestReload(t *testing.T) {
	pistol, knife := testWeapons(t)
	e := entity.New("scout", []inventory.Weapon{pistol, knife}, nil, zaptest.NewLogger(t))

	assert.False(t, e.Reload(), "full magazine")
	e.Selector().UseSelected(inventory.Vec3{Z: 1})
	assert.True(t, e.Reload())
	assert.True(t, pistol.Reloading())

	e.Selector().IncrementIndex()
	assert.False(t, pistol.Reloading(), "switching away cancels the reload")
	assert.False(t, e.Reload(), "melee weapons cannot reload")
}

func TestReload_EmptyInventory(t *testing.T) {
	e := entity.New("ghost", nil, nil, zaptest.NewLogger(t))
	assert.False(t, e.Reload())
	e.Tick()
}
