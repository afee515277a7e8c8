package diag

import "fmt"

// Kind identifies one member of the closed error taxonomy every stage of the
// toolchain raises against. The core never recovers from one of these; they
// always propagate to the driver.
type Kind int

const (
	InvalidToken Kind = iota
	NotTerminatedStrConst
	NonEscapableChar
	NumericOverflow
	InvalidFloat
	SyntaxException
	SymbolNotFound
	TypeMismatch
	ReturnTypeMismatch
	InvalidFieldCount
	InvalidField
	VariableRedefinition
	FunctionRedefinition
	StructRedefinition
	VariantRedefinition
	InvalidTypeConversion
	ConstViolation
	MaxRecursionDepth
	DivisionByZero
)

var kindNames = [...]string{
	"InvalidToken",
	"NotTerminatedStrConst",
	"NonEscapableChar",
	"NumericOverflow",
	"InvalidFloat",
	"SyntaxException",
	"SymbolNotFound",
	"TypeMismatch",
	"ReturnTypeMismatch",
	"InvalidFieldCount",
	"InvalidField",
	"VariableRedefinition",
	"FunctionRedefinition",
	"StructRedefinition",
	"VariantRedefinition",
	"InvalidTypeConversion",
	"ConstViolation",
	"MaxRecursionDepth",
	"DivisionByZero",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "UnknownError"
	}
	return kindNames[k]
}

// Error is the single error type raised anywhere in the core. Every
// occurrence carries the position most relevant to the user: the token
// start for lexical errors, the offending node's position otherwise.
type Error struct {
	Kind    Kind
	Pos     Position
	Message string
}

func New(kind Kind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at %d:%d", e.Kind, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}
