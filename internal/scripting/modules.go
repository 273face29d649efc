package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/dice"
)

// RegisterModules installs the armory global table into L:
//
//	armory.log(msg)    logs msg at info level
//	armory.roll(expr)  rolls a dice expression and returns the total, or nil on a bad expression
func (m *Manager) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("script", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		expr, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(m.roller.Roll(expr).Total()))
		return 1
	}))
	L.SetGlobal("armory", mod)
}
