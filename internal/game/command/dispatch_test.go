package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/armory/internal/game/command"
	"github.com/cory-johannsen/armory/internal/game/dice"
	"github.com/cory-johannsen/armory/internal/game/entity"
	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

type fixture struct {
	dispatcher *command.Dispatcher
	entity     *entity.Entity
	strikes    []inventory.Strike
	switches   int
}

func newFixture(t *testing.T, ids ...string) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	f := &fixture{}
	registry, err := inventory.NewRegistryFrom([]*inventory.WeaponDef{
		{ID: "pistol", Name: "Pistol", Kind: inventory.WeaponKindFirearm, DamageDice: "1d6",
			SingleFire: true, MagazineCapacity: 2, ReloadFrames: 1},
		{ID: "knife", Name: "Knife", Kind: inventory.WeaponKindMelee, DamageDice: "1d4"},
	})
	require.NoError(t, err)
	weapons, err := registry.BuildLoadout(ids, inventory.BuildOptions{
		Roller:   dice.NewRoller(dice.NewSeededSource(3), logger),
		OnStrike: func(s inventory.Strike) { f.strikes = append(f.strikes, s) },
		Logger:   logger,
	})
	require.NoError(t, err)

	bus := event.NewBus()
	bus.Subscribe(event.WeaponSwitched, func(event.Event) { f.switches++ })
	f.entity = entity.New("tester", weapons, bus, logger)
	f.dispatcher = command.NewDispatcher(command.DefaultRegistry(), f.entity, logger)
	f.switches = 0
	return f
}

func TestDispatch_Blank(t *testing.T) {
	f := newFixture(t, "pistol")
	out, err := f.dispatcher.Dispatch("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDispatch_Unknown(t *testing.T) {
	f := newFixture(t, "pistol")
	_, err := f.dispatcher.Dispatch("dance")
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestDispatch_FireDefaultAndExplicitDirection(t *testing.T) {
	f := newFixture(t, "pistol", "knife")

	out, err := f.dispatcher.Dispatch("fire")
	require.NoError(t, err)
	assert.Equal(t, "[1] Pistol single 1/2", out)
	require.Len(t, f.strikes, 1)
	assert.Equal(t, command.DefaultDirection, f.strikes[0].Direction)

	_, err = f.dispatcher.Dispatch("f 1 0 -1")
	require.NoError(t, err)
	require.Len(t, f.strikes, 2)
	assert.Equal(t, inventory.Vec3{X: 1, Z: -1}, f.strikes[1].Direction)
}

func TestDispatch_FireBadDirection(t *testing.T) {
	f := newFixture(t, "pistol")
	_, err := f.dispatcher.Dispatch("fire 1 2")
	assert.ErrorIs(t, err, command.ErrUsage)
	_, err = f.dispatcher.Dispatch("fire 1 up 2")
	assert.ErrorIs(t, err, command.ErrUsage)
	assert.Empty(t, f.strikes)
}

func TestDispatch_CycleWeapons(t *testing.T) {
	f := newFixture(t, "pistol", "knife")

	out, err := f.dispatcher.Dispatch("next")
	require.NoError(t, err)
	assert.Equal(t, "[2] Knife", out)
	out, err = f.dispatcher.Dispatch("]")
	require.NoError(t, err)
	assert.Equal(t, "[1] Pistol single 2/2", out)
	out, err = f.dispatcher.Dispatch("prev")
	require.NoError(t, err)
	assert.Equal(t, "[2] Knife", out)
	assert.Equal(t, 3, f.switches)
}

func TestDispatch_Select(t *testing.T) {
	f := newFixture(t, "pistol", "knife")

	out, err := f.dispatcher.Dispatch("select 2")
	require.NoError(t, err)
	assert.Equal(t, "[2] Knife", out)

	_, err = f.dispatcher.Dispatch("select 3")
	assert.ErrorIs(t, err, inventory.ErrInvalidIndex)
	_, err = f.dispatcher.Dispatch("select 0")
	assert.ErrorIs(t, err, inventory.ErrInvalidIndex)
	_, err = f.dispatcher.Dispatch("select two")
	assert.ErrorIs(t, err, command.ErrUsage)
	_, err = f.dispatcher.Dispatch("select")
	assert.ErrorIs(t, err, command.ErrUsage)
	assert.Equal(t, 1, f.entity.Selector().SelectedIndex())
}

func TestDispatch_Single(t *testing.T) {
	f := newFixture(t, "pistol")

	out, err := f.dispatcher.Dispatch("single")
	require.NoError(t, err)
	assert.Equal(t, "Single-fire on.", out)
	out, err = f.dispatcher.Dispatch("single off")
	require.NoError(t, err)
	assert.Equal(t, "Single-fire off.", out)
	_, err = f.dispatcher.Dispatch("single maybe")
	assert.ErrorIs(t, err, command.ErrUsage)
}

func TestDispatch_EmptyInventory(t *testing.T) {
	f := newFixture(t)

	out, err := f.dispatcher.Dispatch("fire")
	require.NoError(t, err)
	assert.Equal(t, "No weapon to fire.", out)
	out, err = f.dispatcher.Dispatch("next")
	require.NoError(t, err)
	assert.Equal(t, "No weapon.", out)
	out, err = f.dispatcher.Dispatch("status")
	require.NoError(t, err)
	assert.Equal(t, "No weapons.", out)

	_, err = f.dispatcher.Dispatch("single on")
	assert.ErrorIs(t, err, inventory.ErrInvalidState)
	assert.Zero(t, f.switches)
}

func TestDispatch_ReloadAndStatus(t *testing.T) {
	f := newFixture(t, "pistol", "knife")

	out, err := f.dispatcher.Dispatch("reload")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to reload.", out)

	_, err = f.dispatcher.Dispatch("fire")
	require.NoError(t, err)
	out, err = f.dispatcher.Dispatch("r")
	require.NoError(t, err)
	assert.Equal(t, "Reloading.", out)

	out, err = f.dispatcher.Dispatch("status")
	require.NoError(t, err)
	assert.Equal(t, "* 1. Pistol single 1/2 reloading\n  2. Knife", out)
}

func TestDispatch_Help(t *testing.T) {
	f := newFixture(t, "pistol")
	out, err := f.dispatcher.Dispatch("?")
	require.NoError(t, err)
	for _, cmd := range command.BuiltinCommands() {
		assert.Contains(t, out, cmd.Help)
	}
}
