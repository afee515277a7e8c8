package ast

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/token"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// countingVisitor counts how many times each node type is visited; used to
// assert that BaseVisitor's default traversal reaches every child.
type countingVisitor struct {
	BaseVisitor
	Counts map[string]int
}

func newCountingVisitor() *countingVisitor {
	return &countingVisitor{Counts: make(map[string]int)}
}

func (v *countingVisitor) VisitIf(n *If) interface{} {
	v.Counts["If"]++
	return v.BaseVisitor.VisitIf(n)
}

func (v *countingVisitor) VisitWhile(n *While) interface{} {
	v.Counts["While"]++
	return v.BaseVisitor.VisitWhile(n)
}

func (v *countingVisitor) VisitAssignment(n *Assignment) interface{} {
	v.Counts["Assignment"]++
	return v.BaseVisitor.VisitAssignment(n)
}

func (v *countingVisitor) VisitAddition(n *Addition) interface{} {
	v.Counts["Addition"]++
	return v.BaseVisitor.VisitAddition(n)
}

func (v *countingVisitor) VisitConstant(n *Constant) interface{} {
	v.Counts["Constant"]++
	return nil
}

func (v *countingVisitor) VisitVariableAccess(n *VariableAccess) interface{} {
	v.Counts["VariableAccess"]++
	return nil
}

func (v *countingVisitor) VisitFuncCall(n *FuncCall) interface{} {
	v.Counts["FuncCall"]++
	return v.BaseVisitor.VisitFuncCall(n)
}

func intConst(pos diag.Position, v uint32) *Constant {
	return &Constant{Pos: pos, Value: token.UintValue(v), Type: types.Int}
}

func TestBaseVisitor_TraversesIf(t *testing.T) {
	pos := diag.StartPosition("t.lang")
	ifStmt := &If{
		Pos:  pos,
		Cond: &VariableAccess{Pos: pos, Name: "flag"},
		Body: []Stmt{
			&Assignment{
				Pos:    pos,
				LValue: &VariableAccess{Pos: pos, Name: "x"},
				Expr: &Addition{binaryExpr{
					Pos: pos,
					Lhs: intConst(pos, 1),
					Rhs: intConst(pos, 2),
				}},
			},
		},
	}

	v := newCountingVisitor()
	ifStmt.Accept(v)

	if v.Counts["If"] != 1 {
		t.Errorf("expected 1 If, got %d", v.Counts["If"])
	}
	if v.Counts["VariableAccess"] != 2 {
		t.Errorf("expected 2 VariableAccess (cond + lvalue), got %d", v.Counts["VariableAccess"])
	}
	if v.Counts["Assignment"] != 1 {
		t.Errorf("expected 1 Assignment, got %d", v.Counts["Assignment"])
	}
	if v.Counts["Addition"] != 1 {
		t.Errorf("expected 1 Addition, got %d", v.Counts["Addition"])
	}
	if v.Counts["Constant"] != 2 {
		t.Errorf("expected 2 Constants, got %d", v.Counts["Constant"])
	}
}

func TestBaseVisitor_TraversesWhileAndCall(t *testing.T) {
	pos := diag.StartPosition("t.lang")
	loop := &While{
		Pos:  pos,
		Cond: &VariableAccess{Pos: pos, Name: "running"},
		Body: []Stmt{
			&FuncCall{
				Pos:  pos,
				Name: "step",
				Args: []Argument{{Expr: &VariableAccess{Pos: pos, Name: "state"}}},
			},
		},
	}

	v := newCountingVisitor()
	loop.Accept(v)

	if v.Counts["While"] != 1 {
		t.Errorf("expected 1 While, got %d", v.Counts["While"])
	}
	if v.Counts["FuncCall"] != 1 {
		t.Errorf("expected 1 FuncCall, got %d", v.Counts["FuncCall"])
	}
	if v.Counts["VariableAccess"] != 2 {
		t.Errorf("expected 2 VariableAccess (cond + arg), got %d", v.Counts["VariableAccess"])
	}
}

// reversingVisitor rewrites every string Constant in place, demonstrating a
// visitor that mutates rather than just counts.
type reversingVisitor struct {
	BaseVisitor
}

func (v *reversingVisitor) VisitConstant(n *Constant) interface{} {
	if n.Type != types.Str {
		return nil
	}
	runes := []rune(n.Value.Str)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	n.Value = token.StringValue(string(runes))
	return nil
}

func TestReversingVisitor(t *testing.T) {
	pos := diag.StartPosition("t.lang")
	c := &Constant{Pos: pos, Value: token.StringValue("Hello"), Type: types.Str}

	(&reversingVisitor{}).VisitConstant(c)

	if c.Value.Str != "olleH" {
		t.Errorf("expected 'olleH', got %q", c.Value.Str)
	}
}

func TestPrinter_RendersNestedStructure(t *testing.T) {
	pos := diag.StartPosition("t.lang")
	prog := &Program{
		Statements: []Stmt{
			&VarDef{
				Pos:  pos,
				Type: types.Scalar(types.Int),
				Name: "x",
				Expr: intConst(pos, 7),
			},
			&If{
				Pos:  pos,
				Cond: &VariableAccess{Pos: pos, Name: "x"},
				Body: []Stmt{&Print{Pos: pos, Expr: &VariableAccess{Pos: pos, Name: "x"}}},
			},
		},
	}

	out := NewPrinter().PrintProgram(prog)

	if out == "" {
		t.Fatal("expected non-empty printer output")
	}
	for _, want := range []string{"VarDef", "If:", "Print:", "Var: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected printer output to contain %q, got:\n%s", want, out)
		}
	}
}
