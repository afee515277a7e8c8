package ast

// BaseVisitor provides default traversal for every node type. Visitors
// embed it and override only the methods they care about, same as a
// parser.BaseVisitor in the wider compiler-tooling ecosystem this one is
// modeled on.
type BaseVisitor struct{}

var _ Visitor = (*BaseVisitor)(nil)

func (v *BaseVisitor) VisitStructInit(n *StructInit) interface{} {
	for _, f := range n.Fields {
		f.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) visitBinary(n binaryExpr) {
	if n.Lhs != nil {
		n.Lhs.Accept(v)
	}
	if n.Rhs != nil {
		n.Rhs.Accept(v)
	}
}

func (v *BaseVisitor) VisitDisjunction(n *Disjunction) interface{}  { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitConjunction(n *Conjunction) interface{}  { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitEqual(n *Equal) interface{}              { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitNotEqual(n *NotEqual) interface{}        { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitLessThan(n *LessThan) interface{}        { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitLessEqual(n *LessEqual) interface{}      { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitGreaterThan(n *GreaterThan) interface{}  { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitGreaterEqual(n *GreaterEqual) interface{} {
	v.visitBinary(n.binaryExpr)
	return nil
}
func (v *BaseVisitor) VisitAddition(n *Addition) interface{}             { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitSubtraction(n *Subtraction) interface{}       { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitMultiplication(n *Multiplication) interface{} { v.visitBinary(n.binaryExpr); return nil }
func (v *BaseVisitor) VisitDivision(n *Division) interface{}             { v.visitBinary(n.binaryExpr); return nil }

func (v *BaseVisitor) VisitSignChange(n *SignChange) interface{} {
	if n.Inner != nil {
		n.Inner.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitLogicalNegation(n *LogicalNegation) interface{} {
	if n.Inner != nil {
		n.Inner.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitConversion(n *Conversion) interface{} {
	if n.Inner != nil {
		n.Inner.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitTypeCheck(n *TypeCheck) interface{} {
	if n.Inner != nil {
		n.Inner.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitFieldAccess(n *FieldAccess) interface{} {
	if n.Inner != nil {
		n.Inner.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitConstant(n *Constant) interface{} { return nil }

func (v *BaseVisitor) VisitFuncCall(n *FuncCall) interface{} {
	for _, arg := range n.Args {
		if arg.Expr != nil {
			arg.Expr.Accept(v)
		}
	}
	return nil
}

func (v *BaseVisitor) VisitVariableAccess(n *VariableAccess) interface{} { return nil }

func (v *BaseVisitor) VisitIf(n *If) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(v)
	}
	for _, s := range n.Body {
		s.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitWhile(n *While) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(v)
	}
	for _, s := range n.Body {
		s.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitReturn(n *Return) interface{} {
	if n.Expr != nil {
		n.Expr.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitPrint(n *Print) interface{} {
	if n.Expr != nil {
		n.Expr.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitFuncDef(n *FuncDef) interface{} {
	for _, s := range n.Body {
		s.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitAssignment(n *Assignment) interface{} {
	if n.LValue != nil {
		n.LValue.Accept(v)
	}
	if n.Expr != nil {
		n.Expr.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitVarDef(n *VarDef) interface{} {
	if n.Expr != nil {
		n.Expr.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitStructDef(n *StructDef) interface{}  { return nil }
func (v *BaseVisitor) VisitVariantDef(n *VariantDef) interface{} { return nil }
