package interp

import (
	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// eval evaluates an expression node to a Value. Dispatch is a type switch
// over the closed ast.Expr node set, not a visitor.
func (ip *Interpreter) eval(expr ast.Expr, ctx *CallContext) (Value, error) {
	switch e := expr.(type) {
	case *ast.Constant:
		return constantValue(e), nil

	case *ast.VariableAccess:
		ref, ok := ctx.LookupVar(e.Name)
		if !ok {
			return Value{}, diag.New(diag.SymbolNotFound, e.Pos, "variable %q not found", e.Name)
		}
		return ref.Cell.Value, nil

	case *ast.FuncCall:
		v, hasValue, err := ip.executeCall(e, ctx)
		if err != nil {
			return Value{}, err
		}
		if !hasValue {
			return Value{}, diag.New(diag.TypeMismatch, e.Pos, "function %q does not return a value", e.Name)
		}
		return v, nil

	case *ast.StructInit:
		fields := make([]*Cell, len(e.Fields))
		for i, fe := range e.Fields {
			v, err := ip.eval(fe, ctx)
			if err != nil {
				return Value{}, err
			}
			fields[i] = CopyCell(v)
		}
		return Value{Kind: KindStruct, Struct: &StructValue{Fields: fields}}, nil

	case *ast.FieldAccess:
		inner, err := ip.eval(e.Inner, ctx)
		if err != nil {
			return Value{}, err
		}
		if inner.Kind != KindStruct {
			return Value{}, diag.New(diag.TypeMismatch, e.Pos, "field access on a non-struct value")
		}
		idx, ok := fieldIndex(inner.Struct.Def, e.Field)
		if !ok {
			return Value{}, diag.New(diag.InvalidField, e.Pos, "no field %q on struct %s", e.Field, inner.Designator())
		}
		return inner.Struct.Fields[idx].Value, nil

	case *ast.SignChange:
		v, err := ip.eval(e.Inner, ctx)
		if err != nil {
			return Value{}, err
		}
		switch v.Kind {
		case KindInt:
			return IntValue(-v.Uint), nil
		case KindFloat:
			return FloatValue(-v.Float), nil
		default:
			return Value{}, diag.New(diag.TypeMismatch, e.Pos, "unary '-' requires int or float, found %s", v.Designator())
		}

	case *ast.LogicalNegation:
		v, err := ip.eval(e.Inner, ctx)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != KindBool {
			return Value{}, diag.New(diag.TypeMismatch, e.Pos, "'not' requires bool, found %s", v.Designator())
		}
		return BoolValue(!v.Bool), nil

	case *ast.Conversion:
		v, err := ip.eval(e.Inner, ctx)
		if err != nil {
			return Value{}, err
		}
		return ip.convert(v, e.Target, ctx, e.Pos)

	case *ast.TypeCheck:
		v, err := ip.eval(e.Inner, ctx)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(v.innerDesignator().Equal(e.Target)), nil

	case *ast.Disjunction:
		return ip.evalBoolOp(e.Lhs, e.Rhs, ctx, e.Pos, func(a, b bool) bool { return a || b })
	case *ast.Conjunction:
		return ip.evalBoolOp(e.Lhs, e.Rhs, ctx, e.Pos, func(a, b bool) bool { return a && b })

	case *ast.Equal:
		return ip.evalEquality(e.Lhs, e.Rhs, ctx, e.Pos, false)
	case *ast.NotEqual:
		return ip.evalEquality(e.Lhs, e.Rhs, ctx, e.Pos, true)

	case *ast.LessThan:
		return ip.evalRelation(e.Lhs, e.Rhs, ctx, e.Pos, func(c int) bool { return c < 0 })
	case *ast.LessEqual:
		return ip.evalRelation(e.Lhs, e.Rhs, ctx, e.Pos, func(c int) bool { return c <= 0 })
	case *ast.GreaterThan:
		return ip.evalRelation(e.Lhs, e.Rhs, ctx, e.Pos, func(c int) bool { return c > 0 })
	case *ast.GreaterEqual:
		return ip.evalRelation(e.Lhs, e.Rhs, ctx, e.Pos, func(c int) bool { return c >= 0 })

	case *ast.Addition:
		return ip.evalAdditive(e.Lhs, e.Rhs, ctx, e.Pos, true)
	case *ast.Subtraction:
		return ip.evalAdditive(e.Lhs, e.Rhs, ctx, e.Pos, false)
	case *ast.Multiplication:
		return ip.evalArith(e.Lhs, e.Rhs, ctx, e.Pos, '*')
	case *ast.Division:
		return ip.evalArith(e.Lhs, e.Rhs, ctx, e.Pos, '/')

	default:
		return Value{}, diag.New(diag.SyntaxException, expr.Position(), "unhandled expression type %T", expr)
	}
}

func constantValue(c *ast.Constant) Value {
	switch c.Type {
	case types.Int:
		return IntValue(c.Value.Uint)
	case types.Float:
		return FloatValue(c.Value.Float)
	case types.Bool:
		return BoolValue(c.Value.Bool)
	default:
		return StrValue(c.Value.Str)
	}
}

func (ip *Interpreter) evalBoolOp(lhsExpr, rhsExpr ast.Expr, ctx *CallContext, pos diag.Position, op func(a, b bool) bool) (Value, error) {
	lhs, err := ip.eval(lhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ip.eval(rhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	if lhs.Kind != KindBool || rhs.Kind != KindBool {
		return Value{}, diag.New(diag.TypeMismatch, pos, "'and'/'or' require bool operands")
	}
	return BoolValue(op(lhs.Bool, rhs.Bool)), nil
}

func (ip *Interpreter) evalEquality(lhsExpr, rhsExpr ast.Expr, ctx *CallContext, pos diag.Position, negate bool) (Value, error) {
	lhs, err := ip.eval(lhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ip.eval(rhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	if !lhs.IsScalar() || !rhs.IsScalar() || lhs.Kind != rhs.Kind {
		return Value{}, diag.New(diag.TypeMismatch, pos, "'=='/'!=' require operands of the same scalar type")
	}
	eq := scalarEqual(lhs, rhs)
	if negate {
		eq = !eq
	}
	return BoolValue(eq), nil
}

func scalarEqual(a, b Value) bool {
	switch a.Kind {
	case KindInt:
		return a.Uint == b.Uint
	case KindFloat:
		return a.Float == b.Float
	case KindBool:
		return a.Bool == b.Bool
	default:
		return a.Str == b.Str
	}
}

func (ip *Interpreter) evalRelation(lhsExpr, rhsExpr ast.Expr, ctx *CallContext, pos diag.Position, pred func(cmp int) bool) (Value, error) {
	lhs, err := ip.eval(lhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ip.eval(rhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	if lhs.Kind != rhs.Kind || lhs.Kind == KindBool || !lhs.IsScalar() {
		return Value{}, diag.New(diag.TypeMismatch, pos, "relational operators require int, float, or str operands of the same type")
	}
	var cmp int
	switch lhs.Kind {
	case KindInt:
		cmp = cmpUint(lhs.Uint, rhs.Uint)
	case KindFloat:
		cmp = cmpFloat(lhs.Float, rhs.Float)
	default:
		cmp = cmpStr(lhs.Str, rhs.Str)
	}
	return BoolValue(pred(cmp)), nil
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpStr(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ip *Interpreter) evalAdditive(lhsExpr, rhsExpr ast.Expr, ctx *CallContext, pos diag.Position, isAdd bool) (Value, error) {
	lhs, err := ip.eval(lhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ip.eval(rhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	if isAdd && lhs.Kind == KindStr && rhs.Kind == KindStr {
		return StrValue(lhs.Str + rhs.Str), nil
	}
	if lhs.Kind != rhs.Kind || (lhs.Kind != KindInt && lhs.Kind != KindFloat) {
		op := "+"
		if !isAdd {
			op = "-"
		}
		return Value{}, diag.New(diag.TypeMismatch, pos, "'%s' requires two int, two float, or (for '+') two str operands", op)
	}
	if lhs.Kind == KindInt {
		if isAdd {
			return IntValue(lhs.Uint + rhs.Uint), nil
		}
		return IntValue(lhs.Uint - rhs.Uint), nil
	}
	if isAdd {
		return FloatValue(lhs.Float + rhs.Float), nil
	}
	return FloatValue(lhs.Float - rhs.Float), nil
}

func (ip *Interpreter) evalArith(lhsExpr, rhsExpr ast.Expr, ctx *CallContext, pos diag.Position, op byte) (Value, error) {
	lhs, err := ip.eval(lhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ip.eval(rhsExpr, ctx)
	if err != nil {
		return Value{}, err
	}
	if lhs.Kind != rhs.Kind || (lhs.Kind != KindInt && lhs.Kind != KindFloat) {
		return Value{}, diag.New(diag.TypeMismatch, pos, "'%c' requires two int or two float operands", op)
	}
	if lhs.Kind == KindInt {
		if op == '*' {
			return IntValue(lhs.Uint * rhs.Uint), nil
		}
		if rhs.Uint == 0 {
			return Value{}, diag.New(diag.DivisionByZero, pos, "division by zero")
		}
		return IntValue(lhs.Uint / rhs.Uint), nil
	}
	if op == '*' {
		return FloatValue(lhs.Float * rhs.Float), nil
	}
	if rhs.Float == 0 {
		return Value{}, diag.New(diag.DivisionByZero, pos, "division by zero")
	}
	return FloatValue(lhs.Float / rhs.Float), nil
}

// convert implements the 'as' conversion rules: scalar-to-scalar among
// {int, float, bool}, str-to-str identity, scalar/struct-to-variant
// wrapping, variant-to-inner-type unwrapping, and struct-to-same-struct
// identity.
func (ip *Interpreter) convert(v Value, target types.Designator, ctx *CallContext, pos diag.Position) (Value, error) {
	if v.Kind == KindVariant {
		if v.Variant.Inner.Value.Designator().Equal(target) {
			return v.Variant.Inner.Value, nil
		}
		return Value{}, diag.New(diag.InvalidTypeConversion, pos,
			"variant %s holding %s cannot convert to %s", v.Variant.Def.Name, v.Variant.Inner.Value.Designator(), target)
	}

	if target.IsScalar() {
		return convertScalar(v, target.ScalarKind(), pos)
	}

	if v.Kind == KindStruct && v.Struct.Def != nil && v.Struct.Def.Name == target.Name() {
		return v, nil
	}

	if def, ok := ctx.LookupVariant(target.Name()); ok {
		for _, alt := range def.Alternatives {
			if alt.Equal(v.Designator()) {
				return Value{Kind: KindVariant, Variant: &VariantValue{Def: def, Inner: CopyCell(v)}}, nil
			}
		}
	}

	return Value{}, diag.New(diag.InvalidTypeConversion, pos, "cannot convert %s to %s", v.Designator(), target)
}

func convertScalar(v Value, target types.ScalarKind, pos diag.Position) (Value, error) {
	if v.Kind == KindStr || target == types.Str {
		if v.Kind == KindStr && target == types.Str {
			return v, nil
		}
		return Value{}, diag.New(diag.InvalidTypeConversion, pos, "str only converts to str")
	}
	if !v.IsScalar() {
		return Value{}, diag.New(diag.InvalidTypeConversion, pos, "cannot convert %s to %s", v.Designator(), target)
	}

	switch target {
	case types.Int:
		switch v.Kind {
		case KindInt:
			return v, nil
		case KindFloat:
			return IntValue(uint32(v.Float)), nil
		case KindBool:
			if v.Bool {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		}
	case types.Float:
		switch v.Kind {
		case KindInt:
			return FloatValue(float32(v.Uint)), nil
		case KindFloat:
			return v, nil
		case KindBool:
			if v.Bool {
				return FloatValue(1), nil
			}
			return FloatValue(0), nil
		}
	case types.Bool:
		switch v.Kind {
		case KindInt:
			return BoolValue(v.Uint != 0), nil
		case KindFloat:
			return BoolValue(v.Float != 0), nil
		case KindBool:
			return v, nil
		}
	}
	return Value{}, diag.New(diag.InvalidTypeConversion, pos, "cannot convert %s to %s", v.Designator(), target)
}
