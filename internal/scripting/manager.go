package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/dice"
)

// Manager owns one sandboxed LState and dispatches hooks into it.
// Calls are serialized; an LState is single-threaded.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	return &Manager{roller: roller, logger: logger, instLimit: instLimit}
}

// LoadDir creates a fresh VM, registers the armory module, and executes every
// *.lua file in dir in lexicographic order. A previously loaded VM is replaced.
//
// Postcondition: on error the previous VM, if any, stays in place.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range files {
		if err := RunBudgeted(L, m.instLimit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	old := m.state
	m.state = L
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	m.logger.Info("scripts loaded", zap.String("dir", dir), zap.Int("files", len(files)))
	return nil
}

// CallHook calls the named global Lua function. It returns LNil when no
// scripts are loaded or the hook is undefined. Lua runtime errors, including
// an exhausted opcode budget, are logged at warn level and never propagated.
//
// Postcondition: returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return lua.LNil
	}
	L := m.state
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	err := RunBudgeted(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Close releases the loaded VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
