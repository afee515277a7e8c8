package parser

import (
	"testing"

	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/diag"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseString("t.lang", src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func printTree(prog *ast.Program) string {
	return ast.NewPrinter().PrintProgram(prog)
}

func TestAdditionMultiplicationPrecedence(t *testing.T) {
	unparenthesized := mustParse(t, "print a + b * c;")
	parenthesized := mustParse(t, "print (a) + ((b) * (c));")

	got, want := printTree(unparenthesized), printTree(parenthesized)
	if got != want {
		t.Errorf("expected structurally identical trees:\n%s\n---\n%s", got, want)
	}
}

func TestNonAssociativeEqualityIsSyntaxError(t *testing.T) {
	_, err := ParseString("t.lang", "print a == b == c;")
	if err == nil {
		t.Fatal("expected a syntax error for chained ==, got none")
	}
	derr, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T", err)
	}
	if derr.Kind != diag.SyntaxException {
		t.Errorf("expected SyntaxException, got %s", derr.Kind)
	}
}

func TestNonAssociativeRelationIsSyntaxError(t *testing.T) {
	_, err := ParseString("t.lang", "print a < b < c;")
	if err == nil {
		t.Fatal("expected a syntax error for chained <, got none")
	}
}

func TestNonAssociativeCastIsSyntaxError(t *testing.T) {
	_, err := ParseString("t.lang", "print a as int as float;")
	if err == nil {
		t.Fatal("expected a syntax error for chained 'as', got none")
	}
}

func TestNodePositionIsFirstToken(t *testing.T) {
	prog := mustParse(t, "print 1 + 2;")
	printStmt, ok := prog.Statements[0].(*ast.Print)
	if !ok {
		t.Fatalf("expected *ast.Print, got %T", prog.Statements[0])
	}
	add, ok := printStmt.Expr.(*ast.Addition)
	if !ok {
		t.Fatalf("expected *ast.Addition, got %T", printStmt.Expr)
	}
	// "1" starts at column 6 (0-based) on line 1: "print 1 + 2;"
	if add.Position().Line != 1 || add.Position().Column != 6 {
		t.Errorf("expected Addition position (1,6), got (%d,%d)", add.Position().Line, add.Position().Column)
	}
}

func TestFieldAccessPositionIsReceiverPosition(t *testing.T) {
	prog := mustParse(t, "p.y = 1;")
	asgn, ok := prog.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", prog.Statements[0])
	}
	fa, ok := asgn.LValue.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected *ast.FieldAccess, got %T", asgn.LValue)
	}
	// The node's position is the receiver's ("p", column 0), not the '.'.
	if fa.Position().Line != 1 || fa.Position().Column != 0 {
		t.Errorf("expected FieldAccess position (1,0), got (%d,%d)", fa.Position().Line, fa.Position().Column)
	}

	prog = mustParse(t, "print q.x;")
	pr := prog.Statements[0].(*ast.Print)
	fa, ok = pr.Expr.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected *ast.FieldAccess, got %T", pr.Expr)
	}
	// "q" starts at column 6 (0-based) on line 1: "print q.x;"
	if fa.Position().Line != 1 || fa.Position().Column != 6 {
		t.Errorf("expected FieldAccess position (1,6), got (%d,%d)", fa.Position().Line, fa.Position().Column)
	}
}

func TestIDLedStatementDisambiguation(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"assignment", "x = 1;", "*ast.Assignment"},
		{"field assignment", "p.y = 1;", "*ast.Assignment"},
		{"typed var def", "Point p = {1, 2};", "*ast.VarDef"},
		{"typed func def", "Point make(int x) { return {x, x}; }", "*ast.FuncDef"},
		{"call statement", "f(1, ref x);", "*ast.FuncCall"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog := mustParse(t, tc.src)
			if len(prog.Statements) != 1 {
				t.Fatalf("expected exactly one statement, got %d", len(prog.Statements))
			}
			got := typeName(prog.Statements[0])
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestIDLedStatementSyntaxErrorOnJunk(t *testing.T) {
	_, err := ParseString("t.lang", "x + 1;")
	if err == nil {
		t.Fatal("expected a syntax error, got none")
	}
}

func TestScalarTypedDefDisambiguation(t *testing.T) {
	prog := mustParse(t, "int i = 4; int twice(int x) { return x + x; }")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	def, ok := prog.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected *ast.VarDef, got %T", prog.Statements[0])
	}
	if def.IsConst || def.Name != "i" {
		t.Errorf("unexpected var def: %+v", def)
	}
	if _, ok := prog.Statements[1].(*ast.FuncDef); !ok {
		t.Fatalf("expected *ast.FuncDef, got %T", prog.Statements[1])
	}
}

func TestVoidVariableIsSyntaxError(t *testing.T) {
	_, err := ParseString("t.lang", "void v = 1;")
	if err == nil {
		t.Fatal("expected a syntax error for a void variable, got none")
	}
}

func TestFuncDefWithNamedReturnType(t *testing.T) {
	prog := mustParse(t, "Point origin() { return p; }")
	fn, ok := prog.Statements[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected *ast.FuncDef, got %T", prog.Statements[0])
	}
	if !fn.RetType.IsNamed() || fn.RetType.Name() != "Point" {
		t.Errorf("expected return type Point, got %s", fn.RetType)
	}
}

func TestFuncDefParsesParamsAndBody(t *testing.T) {
	prog := mustParse(t, "int add(int a, ref int b) { return a + b; }")
	fn, ok := prog.Statements[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected *ast.FuncDef, got %T", prog.Statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("expected name %q, got %q", "add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Ref {
		t.Error("expected first param to not be ref")
	}
	if !fn.Params[1].Ref {
		t.Error("expected second param to be ref")
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
}

func TestStructDefAndVariantDef(t *testing.T) {
	prog := mustParse(t, "struct Point { int x, int y } variant Number { int, float, str }")
	sdef, ok := prog.Statements[0].(*ast.StructDef)
	if !ok {
		t.Fatalf("expected *ast.StructDef, got %T", prog.Statements[0])
	}
	if sdef.Name != "Point" || len(sdef.Fields) != 2 {
		t.Errorf("unexpected struct def: %+v", sdef)
	}
	vdef, ok := prog.Statements[1].(*ast.VariantDef)
	if !ok {
		t.Fatalf("expected *ast.VariantDef, got %T", prog.Statements[1])
	}
	if vdef.Name != "Number" || len(vdef.Alternatives) != 3 {
		t.Errorf("unexpected variant def: %+v", vdef)
	}
}

func TestConstVarDef(t *testing.T) {
	prog := mustParse(t, "const float pi = 3.14;")
	def, ok := prog.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected *ast.VarDef, got %T", prog.Statements[0])
	}
	if !def.IsConst {
		t.Error("expected IsConst to be true")
	}
}

func TestIfWhileReturn(t *testing.T) {
	prog := mustParse(t, "void f() { if true { while a { return; } } }")
	fn := prog.Statements[0].(*ast.FuncDef)
	ifStmt, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body[0])
	}
	whileStmt, ok := ifStmt.Body[0].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", ifStmt.Body[0])
	}
	if _, ok := whileStmt.Body[0].(*ast.Return); !ok {
		t.Fatalf("expected *ast.Return, got %T", whileStmt.Body[0])
	}
}

func TestUnterminatedBlockIsSyntaxError(t *testing.T) {
	_, err := ParseString("t.lang", "void f() { print 1;")
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated block, got none")
	}
}

func typeName(n interface{}) string {
	switch n.(type) {
	case *ast.Assignment:
		return "*ast.Assignment"
	case *ast.VarDef:
		return "*ast.VarDef"
	case *ast.FuncDef:
		return "*ast.FuncDef"
	case *ast.FuncCall:
		return "*ast.FuncCall"
	default:
		return "unknown"
	}
}
