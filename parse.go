package deriv

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// Expr = num | var | Call | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
//
// All binary operators are left-associative, including ^.

// Parse parses a token sequence into an expression tree. Tokens of kind
// TokenNode are taken as already parsed operands.
//
// A TokenEOF is allowed only as the last token. Tokens of unknown kinds are
// TokenErrors.
func Parse(tokens []Token) (*Node, error) {
	if k := len(tokens); k > 0 && tokens[k-1].Kind == TokenEOF {
		tokens = tokens[:k-1]
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenEOF:
			return nil, &TokenError{Col: tok.Pos, Token: tok.String(), Want: "end of input only as the last token"}
		case TokenNum, TokenOp, TokenLParen, TokenRParen, TokenVar, TokenFunc, TokenNode:
		default:
			return nil, &TokenError{Col: tok.Pos, Token: tok.String(), Want: "a known token"}
		}
	}
	p := parser{toks: tokens}
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		p.end = last.Pos + utf8.RuneCountInString(last.Text())
	}
	if p.end == 0 {
		p.end = 1
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Kind {
	case TokenEOF:
	case TokenRParen:
		return nil, &BracketError{Col: tok.Pos, Right: ")"}
	default:
		panic("deriv: parseterm ended on " + tok.String())
	}
	return n, nil
}

// ParseReader scans and parses an expression.
func ParseReader(src io.RuneScanner, opts ...ParseOption) (*Node, error) {
	toks, err := Lex(src, opts...)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ParseString scans and parses an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Node, error) {
	return ParseReader(strings.NewReader(src), opts...)
}

// MustParse is like ParseString but panics on error. It is intended for
// expressions known to be valid, like those in tests.
func MustParse(src string) *Node {
	n, err := ParseString(src)
	if err != nil {
		panic("deriv: MustParse(" + src + "): " + err.Error())
	}
	return n
}

type parser struct {
	toks []Token
	i    int
	// end is the position just past the last token.
	end int
}

// peek returns the next token without consuming it. Past the end of the
// sequence, the result is an EOF token.
func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return Token{Kind: TokenEOF, Pos: p.end}
	}
	return p.toks[p.i]
}

func (p *parser) next() Token {
	tok := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return tok
}

// parseterm parses operands joined by operators that bind more tightly than
// until. It leaves the token that ended the term unconsumed; that token is
// always an operator, a close paren, or EOF.
func (p *parser) parseterm(until operator) (*Node, error) {
	n, err := p.parselhs()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenOp:
			prec := binop(tok.Op)
			if prec.op == NodeNone {
				return nil, &TokenError{Col: tok.Pos, Token: tok.Text(), Want: "operator"}
			}
			if !prec.moreBinding(until) {
				return n, nil
			}
			p.next()
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			n = binary(prec.op, n, rhs)
		case TokenRParen, TokenEOF:
			return n, nil
		default:
			// Two operands in a row. There is no implicit multiplication.
			return nil, &MalformedError{Col: tok.Pos, Reason: "missing operator before " + describe(tok)}
		}
	}
}

// parselhs parses a single operand: a number, a variable, a function call,
// or a parenthesized expression.
func (p *parser) parselhs() (*Node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNum:
		return Num(tok.Num), nil
	case TokenVar:
		return Sym(tok.Name), nil
	case TokenNode:
		if tok.Node == nil {
			return nil, &TokenError{Col: tok.Pos, Token: tok.Text(), Want: "operand"}
		}
		return tok.Node, nil
	case TokenFunc:
		open := p.next()
		if open.Kind != TokenLParen {
			if open.Kind == TokenEOF {
				return nil, &MalformedError{Col: open.Pos, Reason: "no argument to " + tok.Func.String()}
			}
			return nil, &TokenError{Col: open.Pos, Token: open.Text(), Want: "( after " + tok.Func.String()}
		}
		arg, err := p.parenthesized(open)
		if err != nil {
			return nil, err
		}
		return Call(tok.Func, arg), nil
	case TokenLParen:
		return p.parenthesized(tok)
	case TokenEOF:
		if tok.Pos <= 1 {
			return nil, &MalformedError{Col: tok.Pos, Reason: "no expression"}
		}
		return nil, &MalformedError{Col: tok.Pos, Reason: "no expression at end"}
	case TokenOp, TokenRParen:
		return nil, &TokenError{Col: tok.Pos, Token: tok.Text(), Want: "operand"}
	default:
		return nil, &TokenError{Col: tok.Pos, Token: tok.String(), Want: "operand"}
	}
}

// parenthesized parses the contents of a parenthesized expression up to and
// including the close paren matching open.
func (p *parser) parenthesized(open Token) (*Node, error) {
	if end := p.peek(); end.Kind == TokenRParen {
		return nil, &MalformedError{Col: end.Pos, Reason: "no expression up to \")\""}
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		var berr *BracketError
		if p.peek().Kind == TokenEOF && !errors.As(err, &berr) {
			// The input ended inside the parentheses.
			return nil, &BracketError{Col: open.Pos, Left: "("}
		}
		return nil, err
	}
	switch end := p.next(); end.Kind {
	case TokenRParen:
		return n, nil
	case TokenEOF:
		return nil, &BracketError{Col: open.Pos, Left: "("}
	default:
		panic("deriv: parseterm ended on " + end.String())
	}
}

// describe names a token for error messages.
func describe(tok Token) string {
	switch tok.Kind {
	case TokenNode:
		return "subexpression " + tok.Text()
	case TokenLParen:
		return `"("`
	default:
		return `"` + tok.Text() + `"`
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op is the node kind to use when this operator is selected.
	op NodeKind
}

// moreBinding reports whether p should take its operands before than does.
// Equal precedences do not bind more tightly, which makes every operator
// left-associative.
func (p operator) moreBinding(than operator) bool {
	return p.prec > than.prec
}

// binop gets the binary operator for an operation. If there is no such binary
// operator, then the result has an op of NodeNone.
func binop(op NodeKind) operator {
	switch op {
	case NodeAdd:
		return operator{0, NodeAdd}
	case NodeSub:
		return operator{0, NodeSub}
	case NodeMul:
		return operator{1, NodeMul}
	case NodeDiv:
		return operator{1, NodeDiv}
	case NodePow:
		return operator{2, NodePow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, NodeNone}
