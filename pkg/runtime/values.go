package runtime

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The set of
// implementations is closed; every consumer switches exhaustively.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// FunctionValue is a user-defined function or method together with its
// captured environment. The closure pointer is fixed at creation.
type FunctionValue struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int {
	return len(v.Declaration.Params)
}

// Bind materializes the bound-method form of this function: same
// declaration, but closing over a fresh child environment that carries
// the receiver as "this".
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{
		Declaration:   v.Declaration,
		Closure:       env,
		IsInitializer: v.IsInitializer,
	}
}

// NativeFunc implements a host builtin.
type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a function provided by the host rather than by
// user code.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Shared semantics
//-----------------------------------------------------------------------------

// Truthy reports Lox truthiness: nil and false are falsy, everything else
// is truthy, zero and the empty string included.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equals implements Lox equality: nil equals only nil, numbers and
// strings compare by value, mismatched kinds are never equal, and
// functions, classes, and instances compare by identity.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	default:
		// Remaining kinds are all pointers, so this is identity.
		return a == b
	}
}

// Stringify renders a value the way print shows it: numbers in shortest
// decimal form, strings unquoted.
func Stringify(v Value) string {
	switch val := v.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return strconv.FormatFloat(val.Val, 'g', -1, 64)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return "<fn " + val.Declaration.Name.Lexeme + ">"
	case *NativeFunctionValue:
		return "<native func>"
	case *ClassValue:
		return val.Name
	case *InstanceValue:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("<unknown %T>", v)
	}
}
