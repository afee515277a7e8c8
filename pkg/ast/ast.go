// Package ast defines the syntax tree the parser builds and the
// interpreter walks: a closed set of statement and expression node types,
// each carrying the source position of its first token.
//
// The interpreter dispatches over these nodes with a type switch rather
// than a visitor: the node set is closed and never extended from outside
// this module, so the extra indirection a double-dispatch visitor buys
// isn't needed on the hot evaluation path. A Visitor is still provided
// (visitor.go) for secondary tooling such as the debug printer, where
// open-ended, add-a-method traversal is the right shape.
package ast

import (
	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/token"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// Node is implemented by every statement and expression node.
type Node interface {
	Position() diag.Position
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	Accept(v Visitor) interface{}
	isExpr()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	Accept(v Visitor) interface{}
	isStmt()
}

// Program is the root of a parsed source file: a flat list of top-level
// statements in source order.
type Program struct {
	Statements []Stmt
}

// --- expressions ---------------------------------------------------------

type StructInit struct {
	Pos    diag.Position
	Fields []Expr
}

type binaryExpr struct {
	Pos      diag.Position
	Lhs, Rhs Expr
}

type Disjunction struct{ binaryExpr }
type Conjunction struct{ binaryExpr }
type Equal struct{ binaryExpr }
type NotEqual struct{ binaryExpr }
type LessThan struct{ binaryExpr }
type LessEqual struct{ binaryExpr }
type GreaterThan struct{ binaryExpr }
type GreaterEqual struct{ binaryExpr }
type Addition struct{ binaryExpr }
type Subtraction struct{ binaryExpr }
type Multiplication struct{ binaryExpr }
type Division struct{ binaryExpr }

// The NewXxx constructors below are how callers outside this package build
// the binary-expression nodes: binaryExpr's fields are exported but the
// type itself isn't, so a composite literal naming it can only appear here.

func NewDisjunction(pos diag.Position, lhs, rhs Expr) *Disjunction {
	return &Disjunction{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewConjunction(pos diag.Position, lhs, rhs Expr) *Conjunction {
	return &Conjunction{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewEqual(pos diag.Position, lhs, rhs Expr) *Equal {
	return &Equal{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewNotEqual(pos diag.Position, lhs, rhs Expr) *NotEqual {
	return &NotEqual{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewLessThan(pos diag.Position, lhs, rhs Expr) *LessThan {
	return &LessThan{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewLessEqual(pos diag.Position, lhs, rhs Expr) *LessEqual {
	return &LessEqual{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewGreaterThan(pos diag.Position, lhs, rhs Expr) *GreaterThan {
	return &GreaterThan{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewGreaterEqual(pos diag.Position, lhs, rhs Expr) *GreaterEqual {
	return &GreaterEqual{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewAddition(pos diag.Position, lhs, rhs Expr) *Addition {
	return &Addition{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewSubtraction(pos diag.Position, lhs, rhs Expr) *Subtraction {
	return &Subtraction{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewMultiplication(pos diag.Position, lhs, rhs Expr) *Multiplication {
	return &Multiplication{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}
func NewDivision(pos diag.Position, lhs, rhs Expr) *Division {
	return &Division{binaryExpr{Pos: pos, Lhs: lhs, Rhs: rhs}}
}

type SignChange struct {
	Pos   diag.Position
	Inner Expr
}

type LogicalNegation struct {
	Pos   diag.Position
	Inner Expr
}

type Conversion struct {
	Pos    diag.Position
	Inner  Expr
	Target types.Designator
}

type TypeCheck struct {
	Pos    diag.Position
	Inner  Expr
	Target types.Designator
}

// FieldAccess is used both as a general expression (the field_access
// grammar production) and, when its Inner chain bottoms out in a
// VariableAccess, as an l-value for ID { '.' ID }. There is no separate
// l-value type; the interpreter's lvalue resolver rejects any
// FieldAccess/VariableAccess chain it can't walk back to a variable.
type FieldAccess struct {
	Pos   diag.Position
	Inner Expr
	Field string
}

type Constant struct {
	Pos   diag.Position
	Value token.Value
	Type  types.ScalarKind
}

// Argument is one actual parameter at a call site; Ref records whether it
// was explicitly marked with the 'ref' keyword.
type Argument struct {
	Ref  bool
	Expr Expr
}

// FuncCall doubles as both an expression and a statement: the grammar's
// func_call production is identical in either position, and a
// statement-position call simply discards its result.
type FuncCall struct {
	Pos  diag.Position
	Name string
	Args []Argument
}

type VariableAccess struct {
	Pos  diag.Position
	Name string
}

func (n *StructInit) Position() diag.Position     { return n.Pos }
func (n *Disjunction) Position() diag.Position    { return n.Pos }
func (n *Conjunction) Position() diag.Position    { return n.Pos }
func (n *Equal) Position() diag.Position          { return n.Pos }
func (n *NotEqual) Position() diag.Position       { return n.Pos }
func (n *LessThan) Position() diag.Position       { return n.Pos }
func (n *LessEqual) Position() diag.Position      { return n.Pos }
func (n *GreaterThan) Position() diag.Position    { return n.Pos }
func (n *GreaterEqual) Position() diag.Position   { return n.Pos }
func (n *Addition) Position() diag.Position       { return n.Pos }
func (n *Subtraction) Position() diag.Position    { return n.Pos }
func (n *Multiplication) Position() diag.Position { return n.Pos }
func (n *Division) Position() diag.Position       { return n.Pos }
func (n *SignChange) Position() diag.Position      { return n.Pos }
func (n *LogicalNegation) Position() diag.Position { return n.Pos }
func (n *Conversion) Position() diag.Position      { return n.Pos }
func (n *TypeCheck) Position() diag.Position       { return n.Pos }
func (n *FieldAccess) Position() diag.Position     { return n.Pos }
func (n *Constant) Position() diag.Position        { return n.Pos }
func (n *FuncCall) Position() diag.Position        { return n.Pos }
func (n *VariableAccess) Position() diag.Position  { return n.Pos }

func (n *StructInit) isExpr()      {}
func (n *Disjunction) isExpr()     {}
func (n *Conjunction) isExpr()     {}
func (n *Equal) isExpr()           {}
func (n *NotEqual) isExpr()        {}
func (n *LessThan) isExpr()        {}
func (n *LessEqual) isExpr()       {}
func (n *GreaterThan) isExpr()     {}
func (n *GreaterEqual) isExpr()    {}
func (n *Addition) isExpr()        {}
func (n *Subtraction) isExpr()     {}
func (n *Multiplication) isExpr()  {}
func (n *Division) isExpr()        {}
func (n *SignChange) isExpr()      {}
func (n *LogicalNegation) isExpr() {}
func (n *Conversion) isExpr()      {}
func (n *TypeCheck) isExpr()       {}
func (n *FieldAccess) isExpr()     {}
func (n *Constant) isExpr()        {}
func (n *FuncCall) isExpr()        {}
func (n *VariableAccess) isExpr()  {}

func (n *StructInit) Accept(v Visitor) interface{}      { return v.VisitStructInit(n) }
func (n *Disjunction) Accept(v Visitor) interface{}     { return v.VisitDisjunction(n) }
func (n *Conjunction) Accept(v Visitor) interface{}     { return v.VisitConjunction(n) }
func (n *Equal) Accept(v Visitor) interface{}           { return v.VisitEqual(n) }
func (n *NotEqual) Accept(v Visitor) interface{}        { return v.VisitNotEqual(n) }
func (n *LessThan) Accept(v Visitor) interface{}        { return v.VisitLessThan(n) }
func (n *LessEqual) Accept(v Visitor) interface{}       { return v.VisitLessEqual(n) }
func (n *GreaterThan) Accept(v Visitor) interface{}     { return v.VisitGreaterThan(n) }
func (n *GreaterEqual) Accept(v Visitor) interface{}    { return v.VisitGreaterEqual(n) }
func (n *Addition) Accept(v Visitor) interface{}        { return v.VisitAddition(n) }
func (n *Subtraction) Accept(v Visitor) interface{}     { return v.VisitSubtraction(n) }
func (n *Multiplication) Accept(v Visitor) interface{}  { return v.VisitMultiplication(n) }
func (n *Division) Accept(v Visitor) interface{}        { return v.VisitDivision(n) }
func (n *SignChange) Accept(v Visitor) interface{}      { return v.VisitSignChange(n) }
func (n *LogicalNegation) Accept(v Visitor) interface{} { return v.VisitLogicalNegation(n) }
func (n *Conversion) Accept(v Visitor) interface{}      { return v.VisitConversion(n) }
func (n *TypeCheck) Accept(v Visitor) interface{}       { return v.VisitTypeCheck(n) }
func (n *FieldAccess) Accept(v Visitor) interface{}     { return v.VisitFieldAccess(n) }
func (n *Constant) Accept(v Visitor) interface{}        { return v.VisitConstant(n) }
func (n *FuncCall) Accept(v Visitor) interface{}        { return v.VisitFuncCall(n) }
func (n *VariableAccess) Accept(v Visitor) interface{}  { return v.VisitVariableAccess(n) }

// --- statements -----------------------------------------------------------

type If struct {
	Pos  diag.Position
	Cond Expr
	Body []Stmt
}

type While struct {
	Pos  diag.Position
	Cond Expr
	Body []Stmt
}

type Return struct {
	Pos  diag.Position
	Expr Expr // nil when bare 'return;'
}

type Print struct {
	Pos  diag.Position
	Expr Expr // nil when bare 'print;'
}

type Param struct {
	Pos  diag.Position
	Ref  bool
	Type types.Designator
	Name string
}

type FuncDef struct {
	Pos     diag.Position
	RetType types.Designator
	Name    string
	Params  []Param
	Body    []Stmt
}

type Assignment struct {
	Pos    diag.Position
	LValue Expr
	Expr   Expr
}

type VarDef struct {
	Pos     diag.Position
	IsConst bool
	Type    types.Designator
	Name    string
	Expr    Expr
}

type Field struct {
	Pos  diag.Position
	Type types.Designator
	Name string
}

type StructDef struct {
	Pos    diag.Position
	Name   string
	Fields []Field
}

type VariantDef struct {
	Pos          diag.Position
	Name         string
	Alternatives []types.Designator
}

func (n *If) Position() diag.Position         { return n.Pos }
func (n *While) Position() diag.Position      { return n.Pos }
func (n *Return) Position() diag.Position     { return n.Pos }
func (n *Print) Position() diag.Position      { return n.Pos }
func (n *FuncDef) Position() diag.Position    { return n.Pos }
func (n *Assignment) Position() diag.Position { return n.Pos }
func (n *VarDef) Position() diag.Position     { return n.Pos }
func (n *StructDef) Position() diag.Position  { return n.Pos }
func (n *VariantDef) Position() diag.Position { return n.Pos }

func (n *If) isStmt()         {}
func (n *While) isStmt()      {}
func (n *Return) isStmt()     {}
func (n *Print) isStmt()      {}
func (n *FuncDef) isStmt()    {}
func (n *Assignment) isStmt() {}
func (n *VarDef) isStmt()     {}
func (n *FuncCall) isStmt()   {}
func (n *StructDef) isStmt()  {}
func (n *VariantDef) isStmt() {}

func (n *If) Accept(v Visitor) interface{}         { return v.VisitIf(n) }
func (n *While) Accept(v Visitor) interface{}      { return v.VisitWhile(n) }
func (n *Return) Accept(v Visitor) interface{}     { return v.VisitReturn(n) }
func (n *Print) Accept(v Visitor) interface{}      { return v.VisitPrint(n) }
func (n *FuncDef) Accept(v Visitor) interface{}    { return v.VisitFuncDef(n) }
func (n *Assignment) Accept(v Visitor) interface{} { return v.VisitAssignment(n) }
func (n *VarDef) Accept(v Visitor) interface{}     { return v.VisitVarDef(n) }
func (n *StructDef) Accept(v Visitor) interface{}  { return v.VisitStructDef(n) }
func (n *VariantDef) Accept(v Visitor) interface{} { return v.VisitVariantDef(n) }
