// Package types holds the small, closed set of type descriptors shared by
// the parser (which only ever names a type) and the interpreter (which
// gives those names runtime meaning).
package types

// ScalarKind enumerates the built-in scalar types.
type ScalarKind int

const (
	Int ScalarKind = iota
	Float
	Bool
	Str
)

func (k ScalarKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	default:
		return "?"
	}
}

// designatorKind distinguishes the three forms a Designator can take.
type designatorKind int

const (
	scalarDesignator designatorKind = iota
	namedDesignator
	voidDesignator
)

// Designator is a type designator: a scalar kind, a user-defined type
// name, or the distinguished Void (only valid as a function return type).
type Designator struct {
	kind   designatorKind
	scalar ScalarKind
	name   string
}

func Scalar(k ScalarKind) Designator { return Designator{kind: scalarDesignator, scalar: k} }
func Named(name string) Designator   { return Designator{kind: namedDesignator, name: name} }
func Void() Designator               { return Designator{kind: voidDesignator} }

func (d Designator) IsScalar() bool { return d.kind == scalarDesignator }
func (d Designator) IsNamed() bool  { return d.kind == namedDesignator }
func (d Designator) IsVoid() bool   { return d.kind == voidDesignator }

// ScalarKind and Name return the stored field without checking the form:
// on a designator of another form they return a zero value rather than
// panicking, so callers check IsScalar/IsNamed first.
func (d Designator) ScalarKind() ScalarKind { return d.scalar }
func (d Designator) Name() string           { return d.name }

func (d Designator) String() string {
	switch d.kind {
	case scalarDesignator:
		return d.scalar.String()
	case namedDesignator:
		return d.name
	default:
		return "void"
	}
}

// Equal compares two designators structurally.
func (d Designator) Equal(o Designator) bool {
	if d.kind != o.kind {
		return false
	}
	switch d.kind {
	case scalarDesignator:
		return d.scalar == o.scalar
	case namedDesignator:
		return d.name == o.name
	default:
		return true
	}
}
