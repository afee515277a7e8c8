package ast

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/gaarutyunov/mlang/pkg/types"
)

// Printer renders a formatted, indented dump of a tree, used by tests that
// want a human-readable structural assertion without comparing pointers.
type Printer struct {
	BaseVisitor
	output strings.Builder
	indent int
}

func NewPrinter() *Printer { return &Printer{} }

func (p *Printer) String() string { return p.output.String() }

func (p *Printer) print(format string, args ...interface{}) {
	p.output.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.output, format, args...)
	p.output.WriteString("\n")
}

// PrintProgram dumps every top-level statement.
func (p *Printer) PrintProgram(prog *Program) string {
	for _, s := range prog.Statements {
		s.Accept(p)
	}
	return p.String()
}

func (p *Printer) VisitIf(n *If) interface{} {
	p.print("If:")
	p.indent++
	if n.Cond != nil {
		n.Cond.Accept(p)
	}
	for _, s := range n.Body {
		s.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) VisitWhile(n *While) interface{} {
	p.print("While:")
	p.indent++
	if n.Cond != nil {
		n.Cond.Accept(p)
	}
	for _, s := range n.Body {
		s.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) VisitReturn(n *Return) interface{} {
	p.print("Return:")
	if n.Expr != nil {
		p.indent++
		n.Expr.Accept(p)
		p.indent--
	}
	return nil
}

func (p *Printer) VisitPrint(n *Print) interface{} {
	p.print("Print:")
	if n.Expr != nil {
		p.indent++
		n.Expr.Accept(p)
		p.indent--
	}
	return nil
}

func (p *Printer) VisitFuncDef(n *FuncDef) interface{} {
	names := lo.Map(n.Params, func(param Param, _ int) string {
		prefix := ""
		if param.Ref {
			prefix = "ref "
		}
		return fmt.Sprintf("%s%s %s", prefix, param.Type, param.Name)
	})
	p.print("FuncDef: %s %s(%s)", n.RetType, n.Name, strings.Join(names, ", "))
	p.indent++
	for _, s := range n.Body {
		s.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) VisitAssignment(n *Assignment) interface{} {
	p.print("Assignment:")
	p.indent++
	n.LValue.Accept(p)
	n.Expr.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitVarDef(n *VarDef) interface{} {
	constPrefix := ""
	if n.IsConst {
		constPrefix = "const "
	}
	p.print("VarDef: %s%s %s", constPrefix, n.Type, n.Name)
	p.indent++
	n.Expr.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitStructDef(n *StructDef) interface{} {
	fields := lo.Map(n.Fields, func(f Field, _ int) string {
		return fmt.Sprintf("%s %s", f.Type, f.Name)
	})
	p.print("StructDef: %s { %s }", n.Name, strings.Join(fields, ", "))
	return nil
}

func (p *Printer) VisitVariantDef(n *VariantDef) interface{} {
	alts := lo.Map(n.Alternatives, func(a types.Designator, _ int) string { return a.String() })
	p.print("VariantDef: %s { %s }", n.Name, strings.Join(alts, ", "))
	return nil
}

func (p *Printer) VisitFuncCall(n *FuncCall) interface{} {
	args := lo.Map(n.Args, func(a Argument, _ int) string {
		if a.Ref {
			return "ref ..."
		}
		return "..."
	})
	p.print("FuncCall: %s(%s)", n.Name, strings.Join(args, ", "))
	p.indent++
	for _, a := range n.Args {
		a.Expr.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) VisitVariableAccess(n *VariableAccess) interface{} {
	p.print("Var: %s", n.Name)
	return nil
}

func (p *Printer) VisitConstant(n *Constant) interface{} {
	p.print("Const(%s): %v", n.Type, n.Value)
	return nil
}

func (p *Printer) VisitFieldAccess(n *FieldAccess) interface{} {
	p.print("FieldAccess: .%s", n.Field)
	p.indent++
	n.Inner.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitConversion(n *Conversion) interface{} {
	p.print("As: %s", n.Target)
	p.indent++
	n.Inner.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitTypeCheck(n *TypeCheck) interface{} {
	p.print("Is: %s", n.Target)
	p.indent++
	n.Inner.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitStructInit(n *StructInit) interface{} {
	p.print("StructInit:")
	p.indent++
	for _, f := range n.Fields {
		f.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) printBinary(op string, n binaryExpr) {
	p.print("%s:", op)
	p.indent++
	n.Lhs.Accept(p)
	n.Rhs.Accept(p)
	p.indent--
}

func (p *Printer) VisitDisjunction(n *Disjunction) interface{}  { p.printBinary("or", n.binaryExpr); return nil }
func (p *Printer) VisitConjunction(n *Conjunction) interface{}  { p.printBinary("and", n.binaryExpr); return nil }
func (p *Printer) VisitEqual(n *Equal) interface{}              { p.printBinary("==", n.binaryExpr); return nil }
func (p *Printer) VisitNotEqual(n *NotEqual) interface{}        { p.printBinary("!=", n.binaryExpr); return nil }
func (p *Printer) VisitLessThan(n *LessThan) interface{}        { p.printBinary("<", n.binaryExpr); return nil }
func (p *Printer) VisitLessEqual(n *LessEqual) interface{}      { p.printBinary("<=", n.binaryExpr); return nil }
func (p *Printer) VisitGreaterThan(n *GreaterThan) interface{}  { p.printBinary(">", n.binaryExpr); return nil }
func (p *Printer) VisitGreaterEqual(n *GreaterEqual) interface{} {
	p.printBinary(">=", n.binaryExpr)
	return nil
}
func (p *Printer) VisitAddition(n *Addition) interface{}             { p.printBinary("+", n.binaryExpr); return nil }
func (p *Printer) VisitSubtraction(n *Subtraction) interface{}       { p.printBinary("-", n.binaryExpr); return nil }
func (p *Printer) VisitMultiplication(n *Multiplication) interface{} { p.printBinary("*", n.binaryExpr); return nil }
func (p *Printer) VisitDivision(n *Division) interface{}             { p.printBinary("/", n.binaryExpr); return nil }

func (p *Printer) VisitSignChange(n *SignChange) interface{} {
	p.print("Neg:")
	p.indent++
	n.Inner.Accept(p)
	p.indent--
	return nil
}

func (p *Printer) VisitLogicalNegation(n *LogicalNegation) interface{} {
	p.print("Not:")
	p.indent++
	n.Inner.Accept(p)
	p.indent--
	return nil
}
