// Package scripting runs sandboxed GopherLua hooks in response to game events.
// Scripts see only the safe standard libraries and the armory.* module.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget per hook call when none is configured.
const DefaultInstructionLimit = 100_000

// budgetContext cancels itself once Done has been called limit times.
// GopherLua calls Done once per opcode while a context is set.
type budgetContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining atomic.Int64
}

func (c *budgetContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// withBudget returns a context that cancels after limit opcodes.
func withBudget(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	c := &budgetContext{Context: base, cancel: cancel}
	c.remaining.Store(int64(limit))
	return c, cancel
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultInstructionLimit
	}
	return limit
}

// NewSandboxedState creates an LState with only base, table, string, and math
// loaded and with dofile, loadfile, load, collectgarbage, and require removed.
// Use RunBudgeted to cap the opcodes a call may execute.
//
// Postcondition: the caller owns the returned LState and must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// RunBudgeted runs fn with a fresh opcode budget of instLimit installed on L.
// Exceeding the budget makes the running Lua code fail with a context error.
func RunBudgeted(L *lua.LState, instLimit int, fn func() error) error {
	ctx, cancel := withBudget(effectiveLimit(instLimit))
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()
	return fn()
}
