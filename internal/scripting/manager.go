package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// globalKey is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when a dungeon has no VM of its own.
const globalKey = "__global__"

type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per dungeon and dispatches hooks to it.
// It is safe for concurrent use: calls into the same VM are serialized.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager. Script dice draw from roller, never from a
// combat source.
//
// Precondition: roller must be non-nil. A nil logger is replaced with a no-op logger.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{vms: make(map[string]*vm), roller: roller, logger: logger}
}

// LoadDungeon creates a sandboxed VM for dungeonID, registers the engine
// modules, then executes every *.lua file in scriptDir in lexicographic order.
// A previously loaded VM for dungeonID is replaced.
//
// Precondition: dungeonID must be non-empty; scriptDir must be a readable directory.
func (m *Manager) LoadDungeon(dungeonID, scriptDir string, instLimit int) error {
	return m.loadInto(dungeonID, scriptDir, instLimit)
}

// LoadGlobal creates the shared VM used for dungeons without their own scripts.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalKey, scriptDir, instLimit)
}

// Loaded reports whether dungeonID has its own VM.
func (m *Manager) Loaded(dungeonID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[dungeonID]
	return ok
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		if err := runLimited(L, instLimit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	if old != nil {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.logger.Debug("scripts loaded", zap.String("key", key), zap.Int("files", len(luaFiles)))
	return nil
}

// CallHook calls the named Lua global function in dungeonID's VM, falling
// back to the global VM. Returns LNil if no VM exists or the hook is not
// defined. Lua runtime errors, including an exhausted instruction budget,
// are logged at Warn level and never propagated.
//
// Precondition: args must be scalar values (numbers, strings, booleans);
// tables must be built inside the VM, which the dungeon hooks do.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(dungeonID, hook string, args ...lua.LValue) lua.LValue {
	return m.invoke(dungeonID, hook, func(*lua.LState) []lua.LValue { return args })
}

// invoke resolves the VM for dungeonID and calls hook with the arguments
// build creates. build runs with the VM locked.
func (m *Manager) invoke(dungeonID, hook string, build func(L *lua.LState) []lua.LValue) lua.LValue {
	m.mu.RLock()
	v, ok := m.vms[dungeonID]
	if !ok {
		v = m.vms[globalKey]
	}
	m.mu.RUnlock()
	if v == nil {
		return lua.LNil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	fn := v.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}
	args := build(v.L)
	err := runLimited(v.L, v.limit, func() error {
		return v.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("dungeon", dungeonID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.vms, key)
	}
}
