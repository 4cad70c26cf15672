package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Parser: recursive descent parser for infix arithmetic
// ---------------------------------------------------------------------------

// ParseError describes malformed expression text, with the source position
// of the offending token.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parser parses an arithmetic expression into an expression tree.
//
// Grammar, with standard precedence and left associativity:
//
//	expr   = term   (("+" | "-") term)*
//	term   = factor (("*" | "/") factor)*
//	factor = NUMBER | "(" expr ")"
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to fill curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the whole input as a single expression. Trailing tokens
// after a complete expression are an error.
func Parse(input string) (Expr, error) {
	p := NewParser(input)
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(TokenEOF) {
		return nil, p.errorf("unexpected %s after expression", p.curToken)
	}
	return root, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// errorf builds a ParseError at the current token's position.
func (p *Parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Pos: p.curToken.Pos,
		Msg: fmt.Sprintf(format, args...),
	}
}

// parseExpr parses additive expressions.
func (p *Parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(TokenPlus) || p.curTokenIs(TokenMinus) {
		op := OpKindAdd
		if p.curTokenIs(TokenMinus) {
			op = OpKindSub
		}
		p.nextToken()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			SpanVal: Span{Start: left.Span().Start, End: right.Span().End},
			Op:      op,
			Left:    left,
			Right:   right,
		}
	}
	return left, nil
}

// parseTerm parses multiplicative expressions.
func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(TokenStar) || p.curTokenIs(TokenSlash) {
		op := OpKindMul
		if p.curTokenIs(TokenSlash) {
			op = OpKindDiv
		}
		p.nextToken()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			SpanVal: Span{Start: left.Span().Start, End: right.Span().End},
			Op:      op,
			Left:    left,
			Right:   right,
		}
	}
	return left, nil
}

// parseFactor parses a number literal or a parenthesized expression.
func (p *Parser) parseFactor() (Expr, error) {
	switch p.curToken.Type {
	case TokenNumber:
		return p.parseNumber()

	case TokenLParen:
		p.nextToken()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.curTokenIs(TokenRParen) {
			return nil, p.errorf("expected ')', got %s", p.curToken)
		}
		p.nextToken()
		return inner, nil

	case TokenError:
		return nil, p.errorf("unknown token %q", p.curToken.Literal)

	case TokenEOF:
		return nil, p.errorf("unexpected end of expression, expected number or '('")

	default:
		return nil, p.errorf("expected number or '(', got %s", p.curToken)
	}
}

// parseNumber converts the current number token into an IntLit or FloatLit.
func (p *Parser) parseNumber() (Expr, error) {
	tok := p.curToken
	span := Span{
		Start: tok.Pos,
		End:   Position{Offset: tok.Pos.Offset + len(tok.Literal), Line: tok.Pos.Line, Column: tok.Pos.Column + len(tok.Literal)},
	}
	p.nextToken()

	if strings.Contains(tok.Literal, ".") {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("malformed number %q", tok.Literal)}
		}
		return &FloatLit{SpanVal: span, Value: f}, nil
	}

	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		// Integers beyond int64 still parse, as floats.
		f, ferr := strconv.ParseFloat(tok.Literal, 64)
		if ferr != nil {
			return nil, &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("malformed number %q", tok.Literal)}
		}
		return &FloatLit{SpanVal: span, Value: f}, nil
	}
	return &IntLit{SpanVal: span, Value: n}, nil
}
