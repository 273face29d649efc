package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// SwitchHook is the Lua global called after the active weapon changes.
// It receives the previous and current slot numbers (1-based), the weapon
// instance ID, and the weapon name.
const SwitchHook = "on_weapon_switch"

// SubscribeSwitch calls SwitchHook for every weapon switch published on bus.
func (m *Manager) SubscribeSwitch(bus *event.Bus) event.Subscription {
	return bus.Subscribe(event.WeaponSwitched, func(ev event.Event) {
		sw, ok := ev.Payload.(inventory.WeaponSwitch)
		if !ok {
			return
		}
		m.CallHook(SwitchHook,
			lua.LNumber(sw.Previous+1),
			lua.LNumber(sw.Current+1),
			lua.LString(sw.WeaponID),
			lua.LString(sw.Name),
		)
	})
}
