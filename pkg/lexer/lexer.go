// Package lexer turns a character source into a stream of tokens. It is a
// hand-written streaming scanner: no regular expressions, no backtracking,
// exactly the lookahead the source.Reader gives it (one character).
package lexer

import (
	"strings"
	"unicode"

	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/source"
	"github.com/gaarutyunov/mlang/pkg/token"
)

// maxUint32 is the literal ceiling for both the integer part and the
// fractional-digit accumulator of a numeric literal.
const maxUint32 = 4294967295

// Lexer scans a source.Reader into tokens on demand.
type Lexer struct {
	src *source.Reader
}

// New wraps a source reader.
func New(src *source.Reader) *Lexer {
	return &Lexer{src: src}
}

// NextToken returns the next token, skipping leading whitespace. It never
// panics; every failure is reported as a *diag.Error carrying the start
// position of the offending token. Once the input is exhausted it keeps
// returning ETX tokens forever.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()
	pos := l.src.Position()
	c := l.src.Peek()

	switch {
	case c == source.ETX:
		return token.Token{Kind: token.ETX, Value: token.NoValue(), Pos: pos}, nil
	case isAlpha(c):
		return l.lexIdentOrKeyword(pos), nil
	case isDigit(c):
		return l.lexNumber(pos)
	case c == '"':
		return l.lexString(pos)
	case c == '#':
		return l.lexComment(pos), nil
	case c == '!':
		return l.lexBang(pos)
	default:
		return l.lexPunctOrOperator(pos)
	}
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.src.Peek()) {
		l.src.Advance()
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *Lexer) lexIdentOrKeyword(pos diag.Position) token.Token {
	var sb strings.Builder
	for isIdentRune(l.src.Peek()) {
		sb.WriteRune(l.src.Advance())
	}
	lexeme := sb.String()

	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Value: token.NoValue(), Pos: pos}
	}
	switch lexeme {
	case "true":
		return token.Token{Kind: token.TRUE_CONST, Value: token.BoolValue(true), Pos: pos}
	case "false":
		return token.Token{Kind: token.FALSE_CONST, Value: token.BoolValue(false), Pos: pos}
	}
	return token.Token{Kind: token.ID, Value: token.StringValue(lexeme), Pos: pos}
}

func (l *Lexer) lexNumber(pos diag.Position) (token.Token, error) {
	if l.src.Peek() == '0' {
		l.src.Advance()
		if l.src.Peek() == '.' {
			return l.lexFloatTail(pos, 0)
		}
		return token.Token{Kind: token.INT_CONST, Value: token.UintValue(0), Pos: pos}, nil
	}

	var value uint64
	for isDigit(l.src.Peek()) {
		d := uint64(l.src.Peek() - '0')
		if 10*value+d > maxUint32 {
			return token.Token{}, diag.New(diag.NumericOverflow, pos, "accumulating digit %d onto %d exceeds uint32", d, value)
		}
		value = 10*value + d
		l.src.Advance()
	}

	if l.src.Peek() == '.' {
		return l.lexFloatTail(pos, uint32(value))
	}
	return token.Token{Kind: token.INT_CONST, Value: token.UintValue(uint32(value)), Pos: pos}, nil
}

func (l *Lexer) lexFloatTail(pos diag.Position, intPart uint32) (token.Token, error) {
	l.src.Advance() // consume '.'
	if !isDigit(l.src.Peek()) {
		return token.Token{}, diag.New(diag.InvalidFloat, pos, "'.' not followed by a digit")
	}

	var frac uint64
	digits := 0
	for isDigit(l.src.Peek()) {
		d := uint64(l.src.Peek() - '0')
		if 10*frac+d > maxUint32 {
			return token.Token{}, diag.New(diag.NumericOverflow, pos, "accumulating digit %d onto fractional part %d exceeds uint32", d, frac)
		}
		frac = 10*frac + d
		digits++
		l.src.Advance()
	}

	value := float64(intPart) + float64(frac)*pow10(-digits)
	return token.Token{Kind: token.FLOAT_CONST, Value: token.FloatValue(float32(value)), Pos: pos}, nil
}

// pow10 avoids pulling in math.Pow for a single integral exponent.
func pow10(exp int) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0; i < exp; i++ {
		result *= 10
	}
	if neg {
		return 1 / result
	}
	return result
}

func (l *Lexer) lexString(pos diag.Position) (token.Token, error) {
	l.src.Advance() // consume opening quote
	var sb strings.Builder
	for {
		c := l.src.Peek()
		switch {
		case c == source.ETX:
			return token.Token{}, diag.New(diag.NotTerminatedStrConst, pos, "end of input inside string literal")
		case c == '"':
			l.src.Advance()
			return token.Token{Kind: token.STR_CONST, Value: token.StringValue(sb.String()), Pos: pos}, nil
		case c == '\\':
			l.src.Advance()
			e := l.src.Peek()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case source.ETX:
				return token.Token{}, diag.New(diag.NotTerminatedStrConst, pos, "end of input inside escape sequence")
			default:
				return token.Token{}, diag.New(diag.NonEscapableChar, pos, "'\\%c' is not a recognized escape", e)
			}
			l.src.Advance()
		default:
			sb.WriteRune(c)
			l.src.Advance()
		}
	}
}

func (l *Lexer) lexComment(pos diag.Position) token.Token {
	l.src.Advance() // consume '#'
	var sb strings.Builder
	for {
		c := l.src.Peek()
		if c == source.ETX || c == '\n' {
			break
		}
		sb.WriteRune(c)
		l.src.Advance()
	}
	return token.Token{Kind: token.CMT, Value: token.StringValue(sb.String()), Pos: pos}
}

func (l *Lexer) lexBang(pos diag.Position) (token.Token, error) {
	l.src.Advance() // consume '!'
	if l.src.Peek() == '=' {
		l.src.Advance()
		return token.Token{Kind: token.NEQ, Value: token.NoValue(), Pos: pos}, nil
	}
	return token.Token{}, diag.New(diag.InvalidToken, pos, "'!' not followed by '='")
}

var singleCharTokens = map[rune]token.Kind{
	';': token.SEMI, ',': token.COMMA, '.': token.DOT,
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
}

func (l *Lexer) lexPunctOrOperator(pos diag.Position) (token.Token, error) {
	c := l.src.Peek()

	if kind, ok := singleCharTokens[c]; ok {
		l.src.Advance()
		return token.Token{Kind: kind, Value: token.NoValue(), Pos: pos}, nil
	}

	switch c {
	case '<':
		l.src.Advance()
		if l.src.Peek() == '=' {
			l.src.Advance()
			return token.Token{Kind: token.LTE, Value: token.NoValue(), Pos: pos}, nil
		}
		return token.Token{Kind: token.LT, Value: token.NoValue(), Pos: pos}, nil
	case '>':
		l.src.Advance()
		if l.src.Peek() == '=' {
			l.src.Advance()
			return token.Token{Kind: token.GTE, Value: token.NoValue(), Pos: pos}, nil
		}
		return token.Token{Kind: token.GT, Value: token.NoValue(), Pos: pos}, nil
	case '=':
		l.src.Advance()
		if l.src.Peek() == '=' {
			l.src.Advance()
			return token.Token{Kind: token.EQ, Value: token.NoValue(), Pos: pos}, nil
		}
		return token.Token{Kind: token.ASSIGN, Value: token.NoValue(), Pos: pos}, nil
	}

	l.src.Advance()
	return token.Token{}, diag.New(diag.InvalidToken, pos, "unrecognized character %q", c)
}
