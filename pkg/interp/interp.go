package interp

import (
	"fmt"
	"io"

	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// defaultMaxRecursionDepth bounds nested function calls to keep the host
// stack from exhausting on a runaway recursive program.
const defaultMaxRecursionDepth = 1000

// Interpreter walks a parsed program against a call-context stack rooted at
// a single global context. It holds no state between Run calls: each Run
// starts from a fresh global context, so a fresh Interpreter is cheap.
type Interpreter struct {
	out      io.Writer
	maxDepth int
	depth    int
}

// New creates an Interpreter writing print output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{out: out, maxDepth: defaultMaxRecursionDepth}
}

// returnSignal is the non-fatal control-flow value that unwinds statement
// execution up to the nearest enclosing function call (or to Run, for a
// top-level return).
type returnSignal struct {
	hasValue bool
	value    Value
}

// Run executes a program's top-level statements in a single global call
// context, as though it were the body of an implicit void function.
func (ip *Interpreter) Run(prog *ast.Program) error {
	global := NewCallContext(nil)
	_, err := ip.execBlock(prog.Statements, global, types.Void())
	return err
}

func (ip *Interpreter) execBlock(stmts []ast.Stmt, ctx *CallContext, retType types.Designator) (*returnSignal, error) {
	for _, stmt := range stmts {
		sig, err := ip.execStmt(stmt, ctx, retType)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (ip *Interpreter) execStmt(stmt ast.Stmt, ctx *CallContext, retType types.Designator) (*returnSignal, error) {
	switch s := stmt.(type) {
	case *ast.VarDef:
		v, err := ip.eval(s.Expr, ctx)
		if err != nil {
			return nil, err
		}
		bound, err := ip.bindToDeclaredType(ctx, s.Type, v, s.Pos)
		if err != nil {
			return nil, err
		}
		if err := ctx.DefineVar(s.Pos, s.Name, CopyCell(bound), s.IsConst); err != nil {
			return nil, err
		}
		return nil, nil

	case *ast.Assignment:
		ref, err := ip.resolveLValue(s.LValue, ctx)
		if err != nil {
			return nil, err
		}
		if ref.IsConst {
			return nil, diag.New(diag.ConstViolation, s.LValue.Position(), "cannot assign to a const binding")
		}
		v, err := ip.eval(s.Expr, ctx)
		if err != nil {
			return nil, err
		}
		bound, err := ip.bindToDeclaredType(ctx, ref.Cell.Value.Designator(), v, s.Pos)
		if err != nil {
			return nil, err
		}
		ref.Cell.Value = copyValue(bound)
		return nil, nil

	case *ast.If:
		cond, err := ip.eval(s.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if cond.Kind != KindBool {
			return nil, diag.New(diag.TypeMismatch, s.Cond.Position(), "if condition must be bool")
		}
		if !cond.Bool {
			return nil, nil
		}
		ctx.PushScope()
		defer ctx.PopScope()
		return ip.execBlock(s.Body, ctx, retType)

	case *ast.While:
		for {
			cond, err := ip.eval(s.Cond, ctx)
			if err != nil {
				return nil, err
			}
			if cond.Kind != KindBool {
				return nil, diag.New(diag.TypeMismatch, s.Cond.Position(), "while condition must be bool")
			}
			if !cond.Bool {
				return nil, nil
			}
			ctx.PushScope()
			sig, err := ip.execBlock(s.Body, ctx, retType)
			ctx.PopScope()
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}

	case *ast.Return:
		if s.Expr == nil {
			if !retType.IsVoid() {
				return nil, diag.New(diag.ReturnTypeMismatch, s.Pos, "bare return in a function declared to return %s", retType)
			}
			return &returnSignal{}, nil
		}
		v, err := ip.eval(s.Expr, ctx)
		if err != nil {
			return nil, err
		}
		if !v.Designator().Equal(retType) {
			return nil, diag.New(diag.ReturnTypeMismatch, s.Pos, "returned %s, function declares %s", v.Designator(), retType)
		}
		return &returnSignal{hasValue: true, value: v}, nil

	case *ast.Print:
		if s.Expr == nil {
			fmt.Fprintln(ip.out)
			return nil, nil
		}
		v, err := ip.eval(s.Expr, ctx)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(ip.out, v.Format())
		return nil, nil

	case *ast.FuncCall:
		_, _, err := ip.executeCall(s, ctx)
		return nil, err

	case *ast.FuncDef:
		return nil, ctx.DefineFunc(s.Pos, s)

	case *ast.StructDef:
		return nil, ctx.DefineStruct(s.Pos, s)

	case *ast.VariantDef:
		return nil, ctx.DefineVariant(s.Pos, s)

	default:
		return nil, diag.New(diag.SyntaxException, stmt.Position(), "unhandled statement type %T", stmt)
	}
}

// executeCall resolves, binds, and runs a function call shared by both
// statement- and expression-position call sites. It reports whether the
// callee actually produced a value (false for a void function that ran to
// completion without an explicit bare return carrying one).
func (ip *Interpreter) executeCall(call *ast.FuncCall, ctx *CallContext) (Value, bool, error) {
	def, defCtx, ok := ctx.LookupFunc(call.Name)
	if !ok {
		return Value{}, false, diag.New(diag.SymbolNotFound, call.Pos, "function %q not found", call.Name)
	}
	if len(call.Args) != len(def.Params) {
		return Value{}, false, diag.New(diag.SyntaxException, call.Pos,
			"function %q expects %d argument(s), got %d", call.Name, len(def.Params), len(call.Args))
	}

	newCtx := NewCallContext(defCtx)
	for i, arg := range call.Args {
		param := def.Params[i]
		if param.Ref {
			if !arg.Ref {
				return Value{}, false, diag.New(diag.SyntaxException, arg.Expr.Position(),
					"argument %d to %q binds a ref parameter and must be marked ref", i+1, call.Name)
			}
			ref, err := ip.resolveLValue(arg.Expr, ctx)
			if err != nil {
				return Value{}, false, err
			}
			if ref.IsConst {
				return Value{}, false, diag.New(diag.ConstViolation, arg.Expr.Position(),
					"cannot bind a const value to ref parameter %q", param.Name)
			}
			if !ref.Cell.Value.Designator().Equal(param.Type) {
				return Value{}, false, diag.New(diag.TypeMismatch, arg.Expr.Position(),
					"argument %d to %q has type %s, parameter %q declares %s",
					i+1, call.Name, ref.Cell.Value.Designator(), param.Name, param.Type)
			}
			if err := newCtx.DefineVar(param.Pos, param.Name, ref.Cell, false); err != nil {
				return Value{}, false, err
			}
			continue
		}

		if arg.Ref {
			return Value{}, false, diag.New(diag.SyntaxException, arg.Expr.Position(),
				"argument %d to %q is marked ref but parameter %q is by value", i+1, call.Name, param.Name)
		}
		v, err := ip.eval(arg.Expr, ctx)
		if err != nil {
			return Value{}, false, err
		}
		bound, err := ip.bindToDeclaredType(ctx, param.Type, v, arg.Expr.Position())
		if err != nil {
			return Value{}, false, err
		}
		if err := newCtx.DefineVar(param.Pos, param.Name, CopyCell(bound), false); err != nil {
			return Value{}, false, err
		}
	}

	ip.depth++
	if ip.depth > ip.maxDepth {
		ip.depth--
		return Value{}, false, diag.New(diag.MaxRecursionDepth, call.Pos, "exceeded max recursion depth of %d", ip.maxDepth)
	}
	sig, err := ip.execBlock(def.Body, newCtx, def.RetType)
	ip.depth--
	if err != nil {
		return Value{}, false, err
	}
	if sig == nil {
		if !def.RetType.IsVoid() {
			return Value{}, false, diag.New(diag.ReturnTypeMismatch, call.Pos,
				"function %q must return %s on every path", call.Name, def.RetType)
		}
		return Value{}, false, nil
	}
	return sig.value, sig.hasValue, nil
}

// resolveLValue resolves the restricted grammar production lvalue = ID {
// '.' ID }: a variable access optionally followed by a chain of field
// accesses, each inheriting the const-ness of its container.
func (ip *Interpreter) resolveLValue(expr ast.Expr, ctx *CallContext) (*Reference, error) {
	switch e := expr.(type) {
	case *ast.VariableAccess:
		ref, ok := ctx.LookupVar(e.Name)
		if !ok {
			return nil, diag.New(diag.SymbolNotFound, e.Pos, "variable %q not found", e.Name)
		}
		return ref, nil

	case *ast.FieldAccess:
		parent, err := ip.resolveLValue(e.Inner, ctx)
		if err != nil {
			return nil, err
		}
		if parent.Cell.Value.Kind != KindStruct {
			return nil, diag.New(diag.TypeMismatch, e.Pos, "field access on a non-struct value")
		}
		idx, ok := fieldIndex(parent.Cell.Value.Struct.Def, e.Field)
		if !ok {
			return nil, diag.New(diag.InvalidField, e.Pos, "no field %q on struct %s", e.Field, parent.Cell.Value.Designator())
		}
		return &Reference{Cell: parent.Cell.Value.Struct.Fields[idx], IsConst: parent.IsConst}, nil

	default:
		return nil, diag.New(diag.SyntaxException, expr.Position(), "expression is not assignable")
	}
}

func fieldIndex(def *ast.StructDef, name string) (int, bool) {
	if def == nil {
		return 0, false
	}
	for i, f := range def.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// bindToDeclaredType checks (and, for a struct literal, completes) a value
// against a declared type designator, as required at every VarDef,
// Assignment, and parameter-binding site.
func (ip *Interpreter) bindToDeclaredType(ctx *CallContext, declared types.Designator, v Value, pos diag.Position) (Value, error) {
	if v.Kind == KindStruct && v.Struct.Def == nil {
		return ip.bindStructInit(ctx, declared, v, pos)
	}
	if !v.Designator().Equal(declared) {
		return Value{}, diag.New(diag.TypeMismatch, pos, "expected %s, found %s", declared, v.Designator())
	}
	return v, nil
}

func (ip *Interpreter) bindStructInit(ctx *CallContext, declared types.Designator, v Value, pos diag.Position) (Value, error) {
	if !declared.IsNamed() {
		return Value{}, diag.New(diag.TypeMismatch, pos, "struct initializer used where %s was expected", declared)
	}
	def, ok := ctx.LookupStruct(declared.Name())
	if !ok {
		return Value{}, diag.New(diag.TypeMismatch, pos, "%q does not name a struct", declared.Name())
	}
	if len(v.Struct.Fields) != len(def.Fields) {
		return Value{}, diag.New(diag.InvalidFieldCount, pos,
			"struct %s has %d field(s), initializer has %d", def.Name, len(def.Fields), len(v.Struct.Fields))
	}
	fields := make([]*Cell, len(def.Fields))
	for i, f := range def.Fields {
		converted, err := ip.convert(v.Struct.Fields[i].Value, f.Type, ctx, pos)
		if err != nil {
			return Value{}, err
		}
		fields[i] = CopyCell(converted)
	}
	return Value{Kind: KindStruct, Struct: &StructValue{Def: def, Fields: fields}}, nil
}
