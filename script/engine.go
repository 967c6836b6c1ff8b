// Package script defines item kinds in Lua. A script registers a kind with
//
//	kind("Firefly", {
//	  init = function(self) ... end,
//	  step = function(self, frame) ... end,
//	})
//
// and the engine installs a constructor for it into a system's factories.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/plus3/bitshadow/shadow"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only: it must
// be driven from the goroutine running the scheduler.
type Engine struct {
	vm    *lua.LState
	log   *zap.Logger
	kinds map[string]*lua.LTable
}

func NewEngine(log *zap.Logger) *Engine {
	vm := lua.NewState()
	e := &Engine{vm: vm, log: log, kinds: make(map[string]*lua.LTable)}

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("kind", vm.NewFunction(e.defineKind))
	return e
}

func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) defineKind(L *lua.LState) int {
	name := L.CheckString(1)
	def := L.CheckTable(2)
	e.kinds[name] = def
	e.log.Debug("lua kind defined", zap.String("kind", name))
	return 0
}

// LoadString runs src.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	return nil
}

// LoadFile runs the script at path.
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadDir runs every .lua file in dir. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Kinds returns the defined kind names, sorted.
func (e *Engine) Kinds() []string {
	names := make([]string, 0, len(e.kinds))
	for name := range e.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Install registers every defined kind into f.
func (e *Engine) Install(f *shadow.Factories) {
	for name, def := range e.kinds {
		f.Register(name, func() shadow.Thing {
			return &Scripted{engine: e, def: def}
		})
	}
}
