// Package deriver runs a user-supplied Lua script that overrides the
// built-in resolution derivers. The script defines one global function:
//
//	function derive(mode, text)
//
// returning the derived resolution as a string, or nil to fall back to the
// built-in deriver for that mode.
//
// The Lua state is sandboxed: only the base, table, string, and math
// libraries are opened. io, os, debug, and package stay closed.
package deriver

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cluemark/internal/annotate"
)

// entryPoint is the global function the script must define.
const entryPoint = "derive"

// Engine wraps a sandboxed Lua state holding a loaded deriver script.
//
// gopher-lua states are not goroutine-safe; the mutex serializes calls so
// the engine can be shared between the event loop and a config reload.
type Engine struct {
	// Logf receives deriver failures. Nil discards them.
	Logf func(format string, args ...any)

	mu sync.Mutex
	L  *lua.LState
}

// LoadFile creates an engine from a script file. Loading fails if the
// script does not parse, raises on execution, or does not define derive.
func LoadFile(path string) (*Engine, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	e := &Engine{L: L}
	if err := e.run(func() error { return L.DoFile(path) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading deriver script %s: %w", path, err)
	}
	if L.GetGlobal(entryPoint).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("deriver script %s does not define %s()", path, entryPoint)
	}
	return e, nil
}

// LoadString is LoadFile over inline source, for tests.
func LoadString(source string) (*Engine, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	e := &Engine{L: L}
	if err := e.run(func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading deriver script: %w", err)
	}
	if L.GetGlobal(entryPoint).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("deriver script does not define %s()", entryPoint)
	}
	return e, nil
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// Install wraps every taggable mode's deriver in the registry: the script
// is consulted first, and on error or a nil return the built-in deriver
// runs instead.
func (e *Engine) Install(reg annotate.Registry) (annotate.Registry, error) {
	for _, m := range reg.Modes() {
		d, err := reg.Descriptor(m)
		if err != nil {
			return annotate.Registry{}, err
		}
		if d.Clears {
			continue
		}

		mode := m
		builtin := d.Derive
		wrapped := func(text string) string {
			res, ok, err := e.derive(string(mode), text)
			if err != nil {
				if e.Logf != nil {
					e.Logf("deriver %s: %v", mode, err)
				}
				ok = false
			}
			if ok {
				return res
			}
			if builtin != nil {
				return builtin(text)
			}
			return ""
		}

		reg, err = reg.WithDeriver(mode, wrapped)
		if err != nil {
			return annotate.Registry{}, err
		}
	}
	return reg, nil
}

// derive calls the script. ok is false when the script returned nil,
// deferring to the built-in deriver.
func (e *Engine) derive(mode, text string) (result string, ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.L == nil {
		return "", false, fmt.Errorf("deriver engine closed")
	}

	err = e.run(func() error {
		e.L.Push(e.L.GetGlobal(entryPoint))
		e.L.Push(lua.LString(mode))
		e.L.Push(lua.LString(text))
		if callErr := e.L.PCall(2, 1, nil); callErr != nil {
			return callErr
		}

		ret := e.L.Get(-1)
		e.L.Pop(1)
		switch v := ret.(type) {
		case lua.LString:
			result, ok = string(v), true
		case *lua.LNilType:
		default:
			return fmt.Errorf("%s returned %s, want string or nil", entryPoint, ret.Type())
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return result, ok, nil
}

// run executes fn with panic recovery. gopher-lua panics on some internal
// errors instead of returning them.
func (e *Engine) run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
