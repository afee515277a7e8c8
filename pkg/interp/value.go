// Package interp walks a parsed *ast.Program and executes it against a
// lexically scoped runtime environment. Dispatch over the tree is a type
// switch, not a visitor: the node set is closed, and the hot path has no
// need for double dispatch.
package interp

import (
	"fmt"

	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// Kind tags the variant a runtime Value currently holds.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindStr
	KindStruct
	KindVariant
)

// Value is the tagged runtime value every expression evaluates to: a
// scalar, an (anonymous or named) struct, or a variant instance. At most
// one payload field is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Uint  uint32
	Float float32
	Bool  bool
	Str   string

	Struct  *StructValue
	Variant *VariantValue
}

// StructValue is a product value: an ordered list of field cells. Def is
// nil for an anonymous struct produced by a StructInit that has not yet
// been bound to a declared type.
type StructValue struct {
	Def    *ast.StructDef
	Fields []*Cell
}

// VariantValue wraps an inner value cell with a pointer back to the
// variant definition it was tagged with.
type VariantValue struct {
	Def   *ast.VariantDef
	Inner *Cell
}

// Cell is the mutable, shared storage backing one runtime value. Go's
// garbage collector reclaims a cell once its last sharing Reference drops,
// so no manual refcounting is needed to give ref parameters aliasing
// semantics: a ref binding simply stores a pointer to the same Cell as the
// argument's.
type Cell struct {
	Value Value
}

// Reference is a handle to a value cell plus the const-ness of the binding
// that produced it; it is what l-value resolution and variable lookup
// return.
type Reference struct {
	Cell    *Cell
	IsConst bool
}

func IntValue(v uint32) Value    { return Value{Kind: KindInt, Uint: v} }
func FloatValue(v float32) Value { return Value{Kind: KindFloat, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func StrValue(v string) Value    { return Value{Kind: KindStr, Str: v} }

// ScalarKind reports the scalar type of a scalar value; callers must check
// IsScalar first.
func (v Value) ScalarKind() types.ScalarKind {
	switch v.Kind {
	case KindInt:
		return types.Int
	case KindFloat:
		return types.Float
	case KindBool:
		return types.Bool
	case KindStr:
		return types.Str
	default:
		panic("interp: ScalarKind called on a non-scalar value")
	}
}

func (v Value) IsScalar() bool { return v.Kind <= KindStr }

// Designator returns the runtime type of v as a types.Designator: a scalar
// kind, or the name of its struct/variant definition. An anonymous struct
// (a StructInit not yet bound to a declared type) gets a name no user type
// can collide with, so it never compares equal to a declared type.
func (v Value) Designator() types.Designator {
	switch v.Kind {
	case KindStruct:
		if v.Struct.Def != nil {
			return types.Named(v.Struct.Def.Name)
		}
		return types.Named("{struct}")
	case KindVariant:
		return types.Named(v.Variant.Def.Name)
	default:
		return types.Scalar(v.ScalarKind())
	}
}

// innerDesignator unwraps variant layers to the designator of the
// underlying value, matching how TypeCheck and Conversion compare types.
func (v Value) innerDesignator() types.Designator {
	if v.Kind == KindVariant {
		return v.Variant.Inner.Value.innerDesignator()
	}
	return v.Designator()
}

// Format renders v the way a print statement does: INT unsigned decimal,
// FLOAT default formatting, BOOL as true/false, STR verbatim.
func (v Value) Format() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Uint)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindStr:
		return v.Str
	case KindVariant:
		return v.Variant.Inner.Value.Format()
	case KindStruct:
		parts := make([]string, len(v.Struct.Fields))
		for i, f := range v.Struct.Fields {
			parts[i] = f.Value.Format()
		}
		return fmt.Sprintf("%v", parts)
	default:
		return ""
	}
}

// CopyCell allocates a fresh cell holding a deep copy of v, used for
// non-ref parameter binding and VarDef/Assignment initialization so the new
// binding never aliases the source expression's storage.
func CopyCell(v Value) *Cell {
	return &Cell{Value: copyValue(v)}
}

func copyValue(v Value) Value {
	switch v.Kind {
	case KindStruct:
		fields := make([]*Cell, len(v.Struct.Fields))
		for i, f := range v.Struct.Fields {
			fields[i] = CopyCell(f.Value)
		}
		return Value{Kind: KindStruct, Struct: &StructValue{Def: v.Struct.Def, Fields: fields}}
	case KindVariant:
		return Value{Kind: KindVariant, Variant: &VariantValue{Def: v.Variant.Def, Inner: CopyCell(v.Variant.Inner.Value)}}
	default:
		return v
	}
}
