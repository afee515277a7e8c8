package lexer

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/source"
	"github.com/gaarutyunov/mlang/pkg/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(source.New(strings.NewReader(src), "test"))
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.ETX {
			return toks
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "if while True true False false")
	want := []token.Kind{token.IF, token.WHILE, token.ID, token.TRUE_CONST, token.ID, token.FALSE_CONST, token.ETX}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestIntegerOverflow(t *testing.T) {
	l := New(source.New(strings.NewReader("4294967295"), "test"))
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.INT_CONST || tok.Value.Uint != 4294967295 {
		t.Fatalf("got %v", tok)
	}

	l2 := New(source.New(strings.NewReader("4294967296"), "test"))
	_, err = l2.NextToken()
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.NumericOverflow {
		t.Fatalf("expected NumericOverflow, got %v", err)
	}
}

func TestFloatLiteral(t *testing.T) {
	toks := lexAll(t, "3.14 0.5 0.0")
	if toks[0].Kind != token.FLOAT_CONST || toks[0].Value.Float != 3.14 {
		t.Errorf("got %v", toks[0])
	}
	if toks[2].Kind != token.FLOAT_CONST || toks[2].Value.Float != 0 {
		t.Errorf("got %v", toks[2])
	}
}

func TestInvalidFloat(t *testing.T) {
	l := New(source.New(strings.NewReader("3."), "test"))
	_, err := l.NextToken()
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.InvalidFloat {
		t.Fatalf("expected InvalidFloat, got %v", err)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\tc\"d\\e"`)
	if toks[0].Kind != token.STR_CONST {
		t.Fatalf("got %v", toks[0])
	}
	if toks[0].Value.Str != "a\nb\tc\"d\\e" {
		t.Fatalf("got %q", toks[0].Value.Str)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(source.New(strings.NewReader(`"abc`), "test"))
	_, err := l.NextToken()
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.NotTerminatedStrConst {
		t.Fatalf("expected NotTerminatedStrConst, got %v", err)
	}
}

func TestNonEscapableChar(t *testing.T) {
	l := New(source.New(strings.NewReader(`"a\qb"`), "test"))
	_, err := l.NextToken()
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.NonEscapableChar {
		t.Fatalf("expected NonEscapableChar, got %v", err)
	}
}

func TestCommentsAndOperators(t *testing.T) {
	toks := lexAll(t, "# a comment\n<= >= != == < > = + - * /")
	want := []token.Kind{
		token.CMT, token.LTE, token.GTE, token.NEQ, token.EQ,
		token.LT, token.GT, token.ASSIGN, token.PLUS, token.MINUS,
		token.STAR, token.SLASH, token.ETX,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestBangWithoutEquals(t *testing.T) {
	l := New(source.New(strings.NewReader("!x"), "test"))
	_, err := l.NextToken()
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.InvalidToken {
		t.Fatalf("expected InvalidToken, got %v", err)
	}
}

func TestETXRepeats(t *testing.T) {
	l := New(source.New(strings.NewReader(""), "test"))
	for i := 0; i < 5; i++ {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != token.ETX {
			t.Fatalf("call %d: got %s, want ETX", i, tok.Kind)
		}
	}
}

func TestTokenFilterDropsComments(t *testing.T) {
	l := New(source.New(strings.NewReader("# c\nif"), "test"))
	f, err := NewFilter(l, token.CMT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok, err := f.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.IF {
		t.Fatalf("got %s, want IF", tok.Kind)
	}
}

func TestTokenFilterRejectsETX(t *testing.T) {
	l := New(source.New(strings.NewReader(""), "test"))
	if _, err := NewFilter(l, token.ETX); err == nil {
		t.Fatal("expected error configuring filter with ETX")
	}
}

func TestPositionsPointAtFirstCharacter(t *testing.T) {
	l := New(source.New(strings.NewReader("a\n  bb"), "test"))
	tok1, _ := l.NextToken()
	if tok1.Pos.Line != 1 || tok1.Pos.Column != 0 {
		t.Errorf("got %+v", tok1.Pos)
	}
	tok2, _ := l.NextToken()
	if tok2.Pos.Line != 2 || tok2.Pos.Column != 2 {
		t.Errorf("got %+v", tok2.Pos)
	}
}
