package deriv

import "strconv"

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a TokenNum.
	Num float64
	// Op is the operation of a TokenOp: one of NodeAdd, NodeSub, NodeMul,
	// NodeDiv, or NodePow.
	Op NodeKind
	// Name is the name of a TokenVar.
	Name string
	// Func is the function of a TokenFunc.
	Func Func
	// Node is the subtree held by a TokenNode.
	Node *Node
	// Pos is the 1-based rune column of the start of the token.
	Pos int
}

// TokenKind is the type of a Token.
type TokenKind int8

const (
	// TokenEOF marks the end of a token sequence. The lexer does not emit it.
	TokenEOF TokenKind = iota
	// TokenNum is a literal number, including the constants e and pi.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenLParen is an open parenthesis.
	TokenLParen
	// TokenRParen is a close parenthesis.
	TokenRParen
	// TokenVar is a bare variable name.
	TokenVar
	// TokenFunc is a function name.
	TokenFunc
	// TokenNode holds an already parsed subtree.
	TokenNode
)

var tokenKindNames = [...]string{
	TokenEOF:    "EOF",
	TokenNum:    "Num",
	TokenOp:     "Op",
	TokenLParen: "LParen",
	TokenRParen: "RParen",
	TokenVar:    "Var",
	TokenFunc:   "Func",
	TokenNode:   "Node",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Text returns the token as it would be written in an expression.
func (t Token) Text() string {
	switch t.Kind {
	case TokenEOF:
		return ""
	case TokenNum:
		return formatNum(t.Num)
	case TokenOp:
		return opsyms[t.Op]
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenVar:
		return t.Name
	case TokenFunc:
		return t.Func.String()
	case TokenNode:
		if t.Node == nil {
			return "<nil>"
		}
		return t.Node.String()
	default:
		return "?"
	}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text() + "@" + strconv.Itoa(t.Pos)
}

// Convenience constructors, mostly useful for building token sequences by hand.

// NumToken creates a number token.
func NumToken(v float64) Token { return Token{Kind: TokenNum, Num: v} }

// OpToken creates an operator token for the operator symbol s, which must be
// one of + - * / ^.
func OpToken(s byte) Token {
	op := opbytes[s]
	if op == NodeNone {
		panic("deriv: invalid operator " + strconv.QuoteRune(rune(s)))
	}
	return Token{Kind: TokenOp, Op: op}
}

// VarToken creates a variable token.
func VarToken(name string) Token { return Token{Kind: TokenVar, Name: name} }

// FuncToken creates a function token.
func FuncToken(f Func) Token { return Token{Kind: TokenFunc, Func: f} }

// NodeToken creates a token holding a parsed subtree.
func NodeToken(n *Node) Token { return Token{Kind: TokenNode, Node: n} }

// Paren tokens.
var (
	LParen = Token{Kind: TokenLParen}
	RParen = Token{Kind: TokenRParen}
)

// Operators contains the bytes which are considered to be operators.
const Operators = "+-*/^"

var opbytes = map[byte]NodeKind{
	'+': NodeAdd,
	'-': NodeSub,
	'*': NodeMul,
	'/': NodeDiv,
	'^': NodePow,
}

var opsyms = map[NodeKind]string{
	NodeAdd: "+",
	NodeSub: "-",
	NodeMul: "*",
	NodeDiv: "/",
	NodePow: "^",
}
