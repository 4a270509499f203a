package runtime

import "lox/interpreter-go/pkg/token"

// ClassValue is a class's runtime form: its name, optional superclass,
// and method table. All three are frozen once the declaration statement
// finishes executing.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (c *ClassValue) Kind() Kind { return KindClass }

// FindMethod resolves a method name against this class and then its
// superclass chain, returning nil on a miss.
func (c *ClassValue) FindMethod(name string) *FunctionValue {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the initializer's arity, or zero for classes without one.
func (c *ClassValue) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// InstanceValue pairs a class with per-instance field state. Fields are
// created lazily by assignment.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

// NewInstance allocates an empty instance of a class.
func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (i *InstanceValue) Kind() Kind { return KindInstance }

// Get reads a property: instance fields shadow class methods, and a
// method hit comes back bound to this instance.
func (i *InstanceValue) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, NewError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set writes a field, creating it if absent. The method table is never
// consulted, so a field write shadows a same-named method on later reads.
func (i *InstanceValue) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
