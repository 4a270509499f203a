package runtime

import (
	"fmt"
	"sort"

	"lox/interpreter-go/pkg/token"
)

// Environment is one lexical scope frame: a mutable name-to-value map
// with an optional parent link. A frame may be shared by several owners
// at once (the call that created it and any closures made while it was
// active); writes through any owner are visible to all of them.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a scope frame, optionally nested under a parent.
// The parent link never changes afterwards.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil for the global frame).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or overwrites a binding in this frame only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get searches outward through the chain by name. It backs global
// lookups, where no resolver distance exists.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, NewError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign updates an existing binding in the first frame where it appears,
// failing on names that were never defined.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return NewError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt returns the binding exactly distance frames up the chain. The
// resolver guarantees the frame and binding exist; a miss is an internal
// consistency error, not a user-facing one.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	frame := e.ancestor(distance)
	if frame == nil {
		return nil, fmt.Errorf("internal error: no scope at distance %d for '%s'", distance, name)
	}
	v, ok := frame.values[name]
	if !ok {
		return nil, fmt.Errorf("internal error: '%s' missing at distance %d", name, distance)
	}
	return v, nil
}

// AssignAt writes the binding exactly distance frames up the chain, under
// the same resolver guarantees as GetAt.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	frame := e.ancestor(distance)
	if frame == nil {
		return fmt.Errorf("internal error: no scope at distance %d for '%s'", distance, name)
	}
	if _, ok := frame.values[name]; !ok {
		return fmt.Errorf("internal error: '%s' missing at distance %d", name, distance)
	}
	frame.values[name] = value
	return nil
}

func (e *Environment) ancestor(distance int) *Environment {
	frame := e
	for i := 0; i < distance && frame != nil; i++ {
		frame = frame.parent
	}
	return frame
}

// Lookup reports the binding for name in this frame alone, without
// walking the parent chain.
func (e *Environment) Lookup(name string) (Value, bool) {
	value, ok := e.values[name]
	return value, ok
}

// Keys returns this frame's bindings in sorted order (useful for
// determinism in tests and the REPL's environment dump).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
