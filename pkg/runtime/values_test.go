package runtime

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{NilValue{}, false},
		{BoolValue{Val: false}, false},
		{BoolValue{Val: true}, true},
		{NumberValue{Val: 0}, true},
		{NumberValue{Val: -1}, true},
		{StringValue{Val: ""}, true},
		{StringValue{Val: "false"}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.value); got != c.want {
			t.Errorf("Truthy(%s) = %v, want %v", Stringify(c.value), got, c.want)
		}
	}
}

func TestEquals(t *testing.T) {
	classA := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{}}
	inst1 := NewInstance(classA)
	inst2 := NewInstance(classA)

	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil equals nil", NilValue{}, NilValue{}, true},
		{"nil not equal false", NilValue{}, BoolValue{Val: false}, false},
		{"numbers by value", NumberValue{Val: 2}, NumberValue{Val: 2}, true},
		{"numbers unequal", NumberValue{Val: 2}, NumberValue{Val: 3}, false},
		{"strings by value", StringValue{Val: "ab"}, StringValue{Val: "ab"}, true},
		{"bools by value", BoolValue{Val: true}, BoolValue{Val: true}, true},
		{"number not equal string", NumberValue{Val: 1}, StringValue{Val: "1"}, false},
		{"instance equals itself", inst1, inst1, true},
		{"distinct instances unequal", inst1, inst2, false},
		{"class equals itself", classA, classA, true},
	}
	for _, c := range cases {
		if got := Equals(c.a, c.b); got != c.want {
			t.Errorf("%s: Equals = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqualsNativeFunctions(t *testing.T) {
	impl := func(args []Value) (Value, error) { return NilValue{}, nil }
	f := &NativeFunctionValue{Name: "clock", Arity: 0, Impl: impl}
	g := &NativeFunctionValue{Name: "clock", Arity: 0, Impl: impl}

	if !Equals(f, f) {
		t.Error("native function should equal itself")
	}
	if Equals(f, g) {
		t.Error("distinct native functions should compare unequal")
	}
}

func TestStringify(t *testing.T) {
	decl := ast.Fun("speak", nil)
	fn := &FunctionValue{Declaration: decl, Closure: NewEnvironment(nil)}
	class := &ClassValue{Name: "Bagel", Methods: map[string]*FunctionValue{}}

	cases := []struct {
		value Value
		want  string
	}{
		{NilValue{}, "nil"},
		{BoolValue{Val: true}, "true"},
		{BoolValue{Val: false}, "false"},
		{NumberValue{Val: 3}, "3"},
		{NumberValue{Val: 2.5}, "2.5"},
		{NumberValue{Val: 1e21}, "1e+21"},
		{StringValue{Val: "hi"}, "hi"},
		{fn, "<fn speak>"},
		{class, "Bagel"},
		{NewInstance(class), "Bagel instance"},
	}
	for _, c := range cases {
		if got := Stringify(c.value); got != c.want {
			t.Errorf("Stringify(%#v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{NilValue{}, "nil"},
		{BoolValue{}, "bool"},
		{NumberValue{}, "number"},
		{StringValue{}, "string"},
		{&FunctionValue{}, "function"},
		{&NativeFunctionValue{}, "native_function"},
		{&ClassValue{}, "class"},
		{&InstanceValue{}, "instance"},
	}
	for _, c := range cases {
		if got := c.value.Kind().String(); got != c.want {
			t.Errorf("Kind().String() = %q, want %q", got, c.want)
		}
	}
}
