package lexer

import (
	"fmt"

	"github.com/gaarutyunov/mlang/pkg/token"
)

// TokenSource is anything that produces a stream of tokens on demand: a
// *Lexer, or a *Filter wrapping one.
type TokenSource interface {
	NextToken() (token.Token, error)
}

// Filter wraps a TokenSource and discards every token of a configured
// kind, used to drop comments before parsing.
type Filter struct {
	src  TokenSource
	kind token.Kind
}

// NewFilter builds a Filter that discards tokens of kind from src.
// Configuring the filter with ETX is itself an error, since it would loop
// forever once the underlying source is exhausted.
func NewFilter(src TokenSource, kind token.Kind) (*Filter, error) {
	if kind == token.ETX {
		return nil, fmt.Errorf("token filter: cannot discard ETX tokens")
	}
	return &Filter{src: src, kind: kind}, nil
}

func (f *Filter) NextToken() (token.Token, error) {
	for {
		tok, err := f.src.NextToken()
		if err != nil {
			return token.Token{}, err
		}
		if tok.Kind != f.kind {
			return tok, nil
		}
	}
}
