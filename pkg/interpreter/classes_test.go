package interpreter

import "testing"

func TestClassAndInstancePrinting(t *testing.T) {
	wantPrinted(t, `
class Bagel {}
print Bagel;
print Bagel();
`, "Bagel", "Bagel instance")
}

func TestFieldsReadAndWrite(t *testing.T) {
	wantPrinted(t, `
class Bag {}
var bag = Bag();
bag.weight = 3;
bag.weight = bag.weight + 1;
print bag.weight;
`, "4")
}

func TestMethodsSeeThis(t *testing.T) {
	wantPrinted(t, `
class Person {
  greet() { print "I am " + this.name; }
}
var p = Person();
p.name = "Ada";
p.greet();
`, "I am Ada")
}

func TestBoundMethodRemembersReceiver(t *testing.T) {
	wantPrinted(t, `
class Cake {
  taste() { print "The " + this.flavor + " cake is delicious"; }
}
var cake = Cake();
cake.flavor = "chocolate";
var taste = cake.taste;
taste();
`, "The chocolate cake is delicious")
}

func TestBoundMethodSurvivesRebinding(t *testing.T) {
	wantPrinted(t, `
class Person {
  sayName() { print this.name; }
}
var jane = Person();
jane.name = "Jane";
var bill = Person();
bill.name = "Bill";
bill.sayName = jane.sayName;
bill.sayName();
`, "Jane")
}

func TestFieldShadowsMethod(t *testing.T) {
	wantPrinted(t, `
class Box {
  size() { return "method"; }
}
var box = Box();
print box.size();
box.size = "field";
print box.size;
`, "method", "field")
}

//--------------------------------------------------------------------------
// Initializers

func TestInitializerRunsOnConstruction(t *testing.T) {
	wantPrinted(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
}
var p = Point(3, 4);
print p.x;
print p.y;
`, "3", "4")
}

func TestInitAlwaysYieldsTheInstance(t *testing.T) {
	wantPrinted(t, `
class C {
  init(n) { this.n = n; }
}
var c = C(5);
print c.n;
var d = c.init(9);
print c.n;
print c == d;
`, "5", "9", "true")
}

func TestBareReturnInInitYieldsThis(t *testing.T) {
	wantPrinted(t, `
class E {
  init() {
    this.x = 1;
    return;
    this.x = 2;
  }
}
print E().x;
`, "1")
}

func TestClassArityFollowsInitializer(t *testing.T) {
	wantRuntimeError(t, `
class Point {
  init(x, y) { this.x = x; }
}
Point(1);
`, "Expected 2 arguments but got 1.")
	wantRuntimeError(t, `
class Plain {}
Plain(1);
`, "Expected 0 arguments but got 1.")
}

//--------------------------------------------------------------------------
// Inheritance

func TestMethodsInherit(t *testing.T) {
	wantPrinted(t, `
class Doughnut {
  cook() { print "Fry until golden brown."; }
}
class BostonCream < Doughnut {}
BostonCream().cook();
`, "Fry until golden brown.")
}

func TestSuperCallsOverriddenMethod(t *testing.T) {
	wantPrinted(t, `
class A {
  f() { print "A"; }
}
class B < A {
  f() {
    super.f();
    print "B";
  }
}
B().f();
`, "A", "B")
}

func TestSuperResolvesLexicallyNotDynamically(t *testing.T) {
	// C inherits test from B. Even though this is a C, super inside B's
	// body starts the lookup at A.
	wantPrinted(t, `
class A {
  method() { print "A method"; }
}
class B < A {
  method() { print "B method"; }
  test() { super.method(); }
}
class C < B {}
C().test();
`, "A method")
}

func TestInitializerInherits(t *testing.T) {
	wantPrinted(t, `
class Base {
  init(n) { this.n = n; }
}
class Derived < Base {}
print Derived(7).n;
`, "7")
}

func TestSuperInInitializer(t *testing.T) {
	wantPrinted(t, `
class Base {
  init(n) { this.n = n; }
}
class Derived < Base {
  init(n) {
    super.init(n * 2);
    this.extra = 1;
  }
}
var d = Derived(4);
print d.n;
print d.extra;
`, "8", "1")
}

func TestSuperclassMustBeAClass(t *testing.T) {
	wantRuntimeError(t, `
var NotAClass = "so not a class";
class Oops < NotAClass {}
`, "Superclass must be a class.")
}

func TestSuperMethodMissing(t *testing.T) {
	wantRuntimeError(t, `
class A {}
class B < A {
  f() { super.missing(); }
}
B().f();
`, "Undefined property 'missing'.")
}

//--------------------------------------------------------------------------
// Property errors

func TestUndefinedPropertyRead(t *testing.T) {
	wantRuntimeError(t, `
class Empty {}
Empty().ghost;
`, "Undefined property 'ghost'.")
}

func TestOnlyInstancesHaveProperties(t *testing.T) {
	wantRuntimeError(t, `"str".length;`, "Only instances have properties.")
	wantRuntimeError(t, `
class A {}
A.field;
`, "Only instances have properties.")
}

func TestOnlyInstancesHaveFields(t *testing.T) {
	wantRuntimeError(t, `true.field = 1;`, "Only instances have fields.")
}
