package interp_test

import (
	"bytes"
	"testing"

	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/interp"
	"github.com/gaarutyunov/mlang/pkg/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.ParseString("t.lang", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	var out bytes.Buffer
	err = interp.New(&out).Run(prog)
	return out.String(), err
}

func TestPrintInt(t *testing.T) {
	out, err := run(t, "print 5;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n" {
		t.Errorf("got %q, want %q", out, "5\n")
	}
}

func TestArithmeticAndLogicalScenario(t *testing.T) {
	src := `bool b = not false or 1 == 1 and true != true;
int i = 3 + 2 * 4.89 as int;
float f = (2 as float) * (2.0 / 2 as float);
print i;
print f;
print b;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "11\n2\ntrue\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestConstViolationReportsAssignmentPosition(t *testing.T) {
	_, err := run(t, "const float pi = 3.14;\npi = 3;")
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.ConstViolation {
		t.Fatalf("expected ConstViolation, got %s", derr.Kind)
	}
	if derr.Pos.Line != 2 {
		t.Errorf("expected error on line 2, got line %d", derr.Pos.Line)
	}
}

func TestWhileIfCountdown(t *testing.T) {
	src := `int i = 4;
while i > 0 {
	print i;
	if i == 3 {
		i = i - 1;
	}
	i = i - 1;
}`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "4\n3\n1\n" {
		t.Errorf("got %q, want %q", out, "4\n3\n1\n")
	}
}

func TestStructFieldAssignmentAndAccess(t *testing.T) {
	src := `struct Point { int x, int y }
Point p = {7, 2};
p.y = 1;
print p.y;
p.y = p.x;
print p.y;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n7\n" {
		t.Errorf("got %q, want %q", out, "1\n7\n")
	}
}

func TestVariantConversionAndTypeCheck(t *testing.T) {
	src := `variant Number { int, float, str }
void foo(Number n) {
	if n is int {
		int i = 2 * n as int;
		print i;
	}
	if n is float {
		float f = 0.5 * n as float;
		print f;
	}
}
Number a = 2.5 as Number;
foo(a);
a = 5 as Number;
foo(a);`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1.25\n10\n" {
		t.Errorf("got %q, want %q", out, "1.25\n10\n")
	}
}

func TestRecursiveCountDown(t *testing.T) {
	src := `void count_down(int i) {
	print i;
	if i == 0 {
		return;
	}
	count_down(i - 1);
}
count_down(3);`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3\n2\n1\n0\n" {
		t.Errorf("got %q, want %q", out, "3\n2\n1\n0\n")
	}
}

func TestRefParameterAliasesCallerCell(t *testing.T) {
	src := `void increment(ref int x) {
	x = x + 1;
}
int a = 1;
increment(ref a);
print a;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2\n" {
		t.Errorf("got %q, want %q", out, "2\n")
	}
}

func TestValueParameterDoesNotAlias(t *testing.T) {
	src := `void increment(int x) {
	x = x + 1;
}
int a = 1;
increment(a);
print a;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Errorf("got %q, want %q", out, "1\n")
	}
}

func TestFunctionReturningValue(t *testing.T) {
	src := `int add_one(int num) {
	return num + 1;
}
int i = 3;
int res = add_one(i);
print res;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "4\n" {
		t.Errorf("got %q, want %q", out, "4\n")
	}
}

func TestFunctionReturningNamedStruct(t *testing.T) {
	src := `struct Point { int x, int y }
Point origin() {
	Point p = {0, 0};
	return p;
}
Point o = origin();
print o.x;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "0\n" {
		t.Errorf("got %q, want %q", out, "0\n")
	}
}

func TestStructWrappedInVariant(t *testing.T) {
	src := `struct Point { int x, int y }
struct None {}
variant Any { Point, None }
Point p = {0, 1};
Any a = p as Any;
print (p as Point).y;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Errorf("got %q, want %q", out, "1\n")
	}
}

func TestVariableShadowing(t *testing.T) {
	src := `void foo() {
	int i = 5;
	print i;
}
int i = 3;
print i;
foo();`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3\n5\n" {
		t.Errorf("got %q, want %q", out, "3\n5\n")
	}
}

func TestVoidCallInExpressionIsTypeMismatch(t *testing.T) {
	src := `void noop() {}
int x = noop();`
	_, err := run(t, src)
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.TypeMismatch {
		t.Errorf("expected TypeMismatch, got %s", derr.Kind)
	}
}

func TestSideEffectFreeExpressionIsDeterministic(t *testing.T) {
	src := `int x = 2 + 3 * 4;
print x;
print 2 + 3 * 4;`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "14\n14\n" {
		t.Errorf("got %q, want %q", out, "14\n14\n")
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "int x = 1 / 0;")
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.DivisionByZero {
		t.Errorf("expected DivisionByZero, got %s", derr.Kind)
	}
}

func TestMismatchedArithmeticTypesIsTypeMismatch(t *testing.T) {
	_, err := run(t, "int x = 1 + 2.0;")
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.TypeMismatch {
		t.Errorf("expected TypeMismatch, got %s", derr.Kind)
	}
}

func TestUnknownVariableIsSymbolNotFound(t *testing.T) {
	_, err := run(t, "print missing;")
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.SymbolNotFound {
		t.Errorf("expected SymbolNotFound, got %s", derr.Kind)
	}
}

func TestUnboundedRecursionHitsMaxRecursionDepth(t *testing.T) {
	src := `void loop(int i) {
	loop(i + 1);
}
loop(0);`
	_, err := run(t, src)
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if derr.Kind != diag.MaxRecursionDepth {
		t.Errorf("expected MaxRecursionDepth, got %s", derr.Kind)
	}
}
