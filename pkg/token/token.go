// Package token defines the vocabulary the lexer produces and the parser
// consumes: a closed set of token kinds, each carrying at most one literal
// value, plus the source position of its first character.
package token

import (
	"fmt"

	"github.com/gaarutyunov/mlang/pkg/diag"
)

// Kind is drawn from the closed enumeration of keywords, literals,
// identifier, comment, end-of-text, punctuation, and operators.
type Kind int

const (
	// Keywords
	IF Kind = iota
	WHILE
	RETURN
	PRINT
	CONST
	REF
	STRUCT
	VARIANT
	OR
	AND
	NOT
	AS
	IS
	VOID
	INT
	FLOAT
	BOOL
	STR

	// Literals
	INT_CONST
	FLOAT_CONST
	TRUE_CONST
	FALSE_CONST
	STR_CONST

	// Identifier, comment, end-of-text
	ID
	CMT
	ETX

	// Punctuation
	SEMI
	COMMA
	DOT
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	// Operators
	ASSIGN
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	PLUS
	MINUS
	STAR
	SLASH
)

var kindNames = map[Kind]string{
	IF: "if", WHILE: "while", RETURN: "return", PRINT: "print", CONST: "const",
	REF: "ref", STRUCT: "struct", VARIANT: "variant", OR: "or", AND: "and",
	NOT: "not", AS: "as", IS: "is", VOID: "void", INT: "int", FLOAT: "float",
	BOOL: "bool", STR: "str",
	INT_CONST: "INT_CONST", FLOAT_CONST: "FLOAT_CONST", TRUE_CONST: "TRUE_CONST",
	FALSE_CONST: "FALSE_CONST", STR_CONST: "STR_CONST",
	ID: "ID", CMT: "CMT", ETX: "ETX",
	SEMI: ";", COMMA: ",", DOT: ".", LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	ASSIGN: "=", EQ: "==", NEQ: "!=", LT: "<", LTE: "<=", GT: ">", GTE: ">=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps every reserved lowercase lexeme to its keyword Kind.
// Identifiers with any uppercase letter never match this table, even if
// their lowercase form would.
var Keywords = map[string]Kind{
	"if": IF, "while": WHILE, "return": RETURN, "print": PRINT, "const": CONST,
	"ref": REF, "struct": STRUCT, "variant": VARIANT, "or": OR, "and": AND,
	"not": NOT, "as": AS, "is": IS, "void": VOID, "int": INT, "float": FLOAT,
	"bool": BOOL, "str": STR,
}

// Value holds the optional payload of a token: an unsigned integer, a
// float, a boolean, or a string. At most one field is meaningful, selected
// by the owning Token's Kind.
type Value struct {
	Uint   uint32
	Float  float32
	Bool   bool
	Str    string
	IsNone bool
}

func NoValue() Value             { return Value{IsNone: true} }
func UintValue(v uint32) Value   { return Value{Uint: v} }
func FloatValue(v float32) Value { return Value{Float: v} }
func BoolValue(v bool) Value     { return Value{Bool: v} }
func StringValue(v string) Value { return Value{Str: v} }

// Token is a single lexical unit: a kind, an optional value, and the
// position of its first character.
type Token struct {
	Kind  Kind
	Value Value
	Pos   diag.Position
}

func (t Token) String() string {
	switch t.Kind {
	case ID:
		return fmt.Sprintf("ID(%s)", t.Value.Str)
	case INT_CONST:
		return fmt.Sprintf("INT_CONST(%d)", t.Value.Uint)
	case FLOAT_CONST:
		return fmt.Sprintf("FLOAT_CONST(%g)", t.Value.Float)
	case STR_CONST:
		return fmt.Sprintf("STR_CONST(%q)", t.Value.Str)
	case CMT:
		return fmt.Sprintf("CMT(%q)", t.Value.Str)
	default:
		return t.Kind.String()
	}
}
