// Package parser implements the hand-written recursive-descent parser that
// turns a token stream into a syntax tree. It holds a lookahead of exactly
// one token and never backtracks: every production either consumes the
// tokens it needs or raises a diag.Error at the offending position.
package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/diag"
	"github.com/gaarutyunov/mlang/pkg/lexer"
	"github.com/gaarutyunov/mlang/pkg/source"
	"github.com/gaarutyunov/mlang/pkg/token"
	"github.com/gaarutyunov/mlang/pkg/types"
)

// tokenSource is satisfied by *lexer.Lexer and *lexer.Filter, letting the
// parser run over either a raw lexer or one with comments filtered out.
type tokenSource interface {
	NextToken() (token.Token, error)
}

// Parser consumes a tokenSource and produces an *ast.Program.
type Parser struct {
	src tokenSource
	cur token.Token
}

// New wraps a source reader with a lexer and comment filter, ready to parse.
func New(src *source.Reader) (*Parser, error) {
	lx := lexer.New(src)
	filtered, err := lexer.NewFilter(lx, token.CMT)
	if err != nil {
		return nil, err
	}
	return NewFromTokens(filtered)
}

// NewFromTokens builds a Parser directly over any tokenSource; New calls it
// with the comment-filtered lexer.
func NewFromTokens(src tokenSource) (*Parser, error) {
	p := &Parser{src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseString parses a snippet of source held entirely in memory.
func ParseString(filename, src string) (*ast.Program, error) {
	return ParseReader(strings.NewReader(src), filename)
}

// ParseBytes parses a snippet of source held entirely in memory.
func ParseBytes(filename string, src []byte) (*ast.Program, error) {
	return ParseReader(bytes.NewReader(src), filename)
}

// ParseReader parses an arbitrary byte stream.
func ParseReader(r io.Reader, filename string) (*ast.Program, error) {
	p, err := New(source.New(r, filename))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) advance() error {
	t, err := p.src.NextToken()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *Parser) syntaxErrorf(format string, args ...interface{}) error {
	return diag.New(diag.SyntaxException, p.cur.Pos, format, args...)
}

// expect consumes the current token if it has the given kind, else raises a
// SyntaxException; it returns the consumed token.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.syntaxErrorf("expected %s, found %s", k, p.cur.Kind)
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return t, nil
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

// ParseProgram consumes tokens through ETX and returns the top-level
// statement list.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(token.ETX) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.STRUCT:
		return p.parseStructDef()
	case token.VARIANT:
		return p.parseVariantDef()
	case token.CONST:
		return p.parseConstVarDef()
	case token.VOID, token.INT, token.FLOAT, token.BOOL, token.STR:
		return p.parseTypedDef()
	case token.ID:
		return p.parseIDLedStatement()
	default:
		return nil, p.syntaxErrorf("unexpected token %s at start of statement", p.cur.Kind)
	}
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		if p.at(token.ETX) {
			return nil, p.syntaxErrorf("unterminated block, expected %s", token.RBRACE)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.If{Pos: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.at(token.SEMI) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Return{Pos: pos}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Return{Pos: pos, Expr: expr}, nil
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.at(token.SEMI) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Print{Pos: pos}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Print{Pos: pos, Expr: expr}, nil
}

// parseType consumes one of the scalar-type keywords or a user-defined type
// name and returns its designator.
func (p *Parser) parseType() (types.Designator, error) {
	switch p.cur.Kind {
	case token.INT:
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Scalar(types.Int), nil
	case token.FLOAT:
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Scalar(types.Float), nil
	case token.BOOL:
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Scalar(types.Bool), nil
	case token.STR:
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Scalar(types.Str), nil
	case token.ID:
		name := p.cur.Value.Str
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Named(name), nil
	default:
		return types.Designator{}, p.syntaxErrorf("expected a type, found %s", p.cur.Kind)
	}
}

func (p *Parser) parseRetType() (types.Designator, error) {
	if p.at(token.VOID) {
		if err := p.advance(); err != nil {
			return types.Designator{}, err
		}
		return types.Void(), nil
	}
	return p.parseType()
}

// parseTypedDef handles statements led by 'void' or a scalar-type keyword:
// after consuming the type and the following name, '(' introduces a function
// definition and '=' a variable definition (void variables are rejected).
func (p *Parser) parseTypedDef() (ast.Stmt, error) {
	pos := p.cur.Pos
	retType, err := p.parseRetType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.LPAREN:
		return p.parseFuncDefTail(pos, retType, nameTok.Value.Str)
	case token.ASSIGN:
		if retType.IsVoid() {
			return nil, p.syntaxErrorf("a variable cannot have type void")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.VarDef{Pos: pos, Type: retType, Name: nameTok.Value.Str, Expr: expr}, nil
	default:
		return nil, p.syntaxErrorf("expected %s or %s after %q, found %s",
			token.LPAREN, token.ASSIGN, nameTok.Value.Str, p.cur.Kind)
	}
}

// parseFuncDefTail consumes the parameter list and body of a function
// definition whose return type and name are already known.
func (p *Parser) parseFuncDefTail(pos diag.Position, retType types.Designator, name string) (ast.Stmt, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.RPAREN) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{Pos: pos, RetType: retType, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseParameter() (ast.Param, error) {
	pos := p.cur.Pos
	ref := false
	if p.at(token.REF) {
		ref = true
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Pos: pos, Ref: ref, Type: typ, Name: nameTok.Value.Str}, nil
}

func (p *Parser) parseStructDef() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.Field
	for !p.at(token.RBRACE) {
		fpos := p.cur.Pos
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fname, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Pos: fpos, Type: typ, Name: fname.Value.Str})
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructDef{Pos: pos, Name: nameTok.Value.Str, Fields: fields}, nil
}

func (p *Parser) parseVariantDef() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var alts []types.Designator
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	alts = append(alts, typ)
	for p.at(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		alts = append(alts, typ)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.VariantDef{Pos: pos, Name: nameTok.Value.Str, Alternatives: alts}, nil
}

func (p *Parser) parseConstVarDef() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.VarDef{Pos: pos, IsConst: true, Type: typ, Name: nameTok.Value.Str, Expr: expr}, nil
}

// parseIDLedStatement disambiguates the statement forms that can start
// with a bare ID: after consuming the leading ID, '=' or '.' means
// assignment, another ID means a user-typed definition (variable or
// function, split the same way parseTypedDef splits on the token after the
// name), and '(' means a call statement.
func (p *Parser) parseIDLedStatement() (ast.Stmt, error) {
	pos := p.cur.Pos
	name := p.cur.Value.Str
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.ASSIGN, token.DOT:
		lvalue, err := p.parseLValueTail(&ast.VariableAccess{Pos: pos, Name: name})
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.Assignment{Pos: pos, LValue: lvalue, Expr: expr}, nil

	case token.ID:
		varName := p.cur.Value.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.at(token.LPAREN) {
			return p.parseFuncDefTail(pos, types.Named(name), varName)
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.VarDef{Pos: pos, Type: types.Named(name), Name: varName, Expr: expr}, nil

	case token.LPAREN:
		call, err := p.parseFuncCallTail(pos, name)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return call, nil

	default:
		return nil, p.syntaxErrorf("unexpected token %s after identifier %q", p.cur.Kind, name)
	}
}

// parseLValueTail consumes any trailing '.' ID chain on an l-value already
// rooted at base.
func (p *Parser) parseLValueTail(base ast.Expr) (ast.Expr, error) {
	for p.at(token.DOT) {
		pos := base.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		fieldTok, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		base = &ast.FieldAccess{Pos: pos, Inner: base, Field: fieldTok.Value.Str}
	}
	return base, nil
}

func (p *Parser) parseFuncCallTail(pos diag.Position, name string) (*ast.FuncCall, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Argument
	for !p.at(token.RPAREN) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.FuncCall{Pos: pos, Name: name, Args: args}, nil
}

func (p *Parser) parseArgument() (ast.Argument, error) {
	ref := false
	if p.at(token.REF) {
		ref = true
		if err := p.advance(); err != nil {
			return ast.Argument{}, err
		}
	}
	expr, err := p.parseExpression()
	if err != nil {
		return ast.Argument{}, err
	}
	return ast.Argument{Ref: ref, Expr: expr}, nil
}

// --- expressions, precedence climbing low-to-high ------------------------

func (p *Parser) parseExpression() (ast.Expr, error) { return p.parseDisjunction() }

func (p *Parser) parseDisjunction() (ast.Expr, error) {
	lhs, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		pos := lhs.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewDisjunction(pos, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseConjunction() (ast.Expr, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		pos := lhs.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewConjunction(pos, lhs, rhs)
	}
	return lhs, nil
}

// parseEquality and parseRelation are non-associative: at most one operator
// is consumed, and a second one at the same level is a syntax error rather
// than silently chaining.
func (p *Parser) parseEquality() (ast.Expr, error) {
	lhs, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EQ) && !p.at(token.NEQ) {
		return lhs, nil
	}
	op := p.cur.Kind
	pos := lhs.Position()
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	if p.at(token.EQ) || p.at(token.NEQ) {
		return nil, p.syntaxErrorf("comparison operators do not associate; found a second %s", p.cur.Kind)
	}
	if op == token.EQ {
		return ast.NewEqual(pos, lhs, rhs), nil
	}
	return ast.NewNotEqual(pos, lhs, rhs), nil
}

func (p *Parser) parseRelation() (ast.Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case token.LT, token.LTE, token.GT, token.GTE:
	default:
		return lhs, nil
	}
	op := p.cur.Kind
	pos := lhs.Position()
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case token.LT, token.LTE, token.GT, token.GTE:
		return nil, p.syntaxErrorf("relational operators do not associate; found a second %s", p.cur.Kind)
	}
	switch op {
	case token.LT:
		return ast.NewLessThan(pos, lhs, rhs), nil
	case token.LTE:
		return ast.NewLessEqual(pos, lhs, rhs), nil
	case token.GT:
		return ast.NewGreaterThan(pos, lhs, rhs), nil
	default:
		return ast.NewGreaterEqual(pos, lhs, rhs), nil
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.cur.Kind
		pos := lhs.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if op == token.PLUS {
			lhs = ast.NewAddition(pos, lhs, rhs)
		} else {
			lhs = ast.NewSubtraction(pos, lhs, rhs)
		}
	}
	return lhs, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := p.cur.Kind
		pos := lhs.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == token.STAR {
			lhs = ast.NewMultiplication(pos, lhs, rhs)
		} else {
			lhs = ast.NewDivision(pos, lhs, rhs)
		}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.MINUS:
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeCast()
		if err != nil {
			return nil, err
		}
		return &ast.SignChange{Pos: pos, Inner: inner}, nil
	case token.NOT:
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeCast()
		if err != nil {
			return nil, err
		}
		return &ast.LogicalNegation{Pos: pos, Inner: inner}, nil
	default:
		return p.parseTypeCast()
	}
}

// parseTypeCast, like equality/relation, is non-associative: 'as'/'is' do
// not chain.
func (p *Parser) parseTypeCast() (ast.Expr, error) {
	inner, err := p.parseFieldAccess()
	if err != nil {
		return nil, err
	}
	if !p.at(token.AS) && !p.at(token.IS) {
		return inner, nil
	}
	isConversion := p.at(token.AS)
	pos := inner.Position()
	if err := p.advance(); err != nil {
		return nil, err
	}
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.at(token.AS) || p.at(token.IS) {
		return nil, p.syntaxErrorf("'as'/'is' do not associate; found a second %s", p.cur.Kind)
	}
	if isConversion {
		return &ast.Conversion{Pos: pos, Inner: inner, Target: target}, nil
	}
	return &ast.TypeCheck{Pos: pos, Inner: inner, Target: target}, nil
}

func (p *Parser) parseFieldAccess() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(token.DOT) {
		pos := expr.Position()
		if err := p.advance(); err != nil {
			return nil, err
		}
		fieldTok, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		expr = &ast.FieldAccess{Pos: pos, Inner: expr, Field: fieldTok.Value.Str}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case token.LBRACE:
		return p.parseStructInit()

	case token.INT_CONST:
		pos, v := p.cur.Pos, p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Constant{Pos: pos, Value: v, Type: types.Int}, nil

	case token.FLOAT_CONST:
		pos, v := p.cur.Pos, p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Constant{Pos: pos, Value: v, Type: types.Float}, nil

	case token.TRUE_CONST, token.FALSE_CONST:
		pos, v := p.cur.Pos, p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Constant{Pos: pos, Value: v, Type: types.Bool}, nil

	case token.STR_CONST:
		pos, v := p.cur.Pos, p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Constant{Pos: pos, Value: v, Type: types.Str}, nil

	case token.ID:
		pos := p.cur.Pos
		name := p.cur.Value.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.at(token.LPAREN) {
			return p.parseFuncCallTail(pos, name)
		}
		return &ast.VariableAccess{Pos: pos, Name: name}, nil

	default:
		return nil, p.syntaxErrorf("unexpected token %s in expression", p.cur.Kind)
	}
}

func (p *Parser) parseStructInit() (ast.Expr, error) {
	pos := p.cur.Pos
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.Expr
	for !p.at(token.RBRACE) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, expr)
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructInit{Pos: pos, Fields: fields}, nil
}
