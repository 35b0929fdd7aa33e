package deriv

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    *parsectx
	// operand is whether the next token is in operand position, where a
	// minus sign may begin a number.
	operand bool
}

func lex(src io.RuneScanner, p *parsectx) *lexer {
	return &lexer{
		src:     src,
		rune:    1,
		p:       p,
		operand: true,
	}
}

// Lex scans the entire input into a token sequence.
func Lex(src io.RuneScanner, opts ...ParseOption) ([]Token, error) {
	p := newparsectx(opts)
	scan := lex(src, &p)
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return toks, err
		}
		if tok.Kind == TokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// LexString scans a string into a token sequence.
func LexString(src string, opts ...ParseOption) ([]Token, error) {
	return Lex(strings.NewReader(src), opts...)
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peekRune returns the next rune without consuming it.
func (l *lexer) peekRune() (rune, bool) {
	r, _, err := l.src.ReadRune()
	if err != nil {
		return 0, false
	}
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	return r, true
}

// next scans the next token from the input. At the end of the input, the
// result is a TokenEOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = TokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			return l.number(tok)
		case r == '-' && l.operand:
			// A minus sign where an operand is expected is part of a number
			// if a number follows immediately.
			if c, ok := l.peekRune(); ok && ('0' <= c && c <= '9' || c == '.') {
				l.buf.WriteRune(r)
				return l.number(tok)
			}
			tok.Kind = TokenOp
			tok.Op = NodeSub
			l.operand = true
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			l.scanIdent()
			return l.ident(tok), nil
		case r == '(':
			tok.Kind = TokenLParen
			l.operand = true
			return tok, nil
		case r == ')':
			tok.Kind = TokenRParen
			l.operand = false
			return tok, nil
		default:
			if r < 0x80 {
				if op := opbytes[byte(r)]; op != NodeNone {
					tok.Kind = TokenOp
					tok.Op = op
					l.operand = true
					return tok, nil
				}
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

func (l *lexer) number(tok Token) (Token, error) {
	if err := l.scanNum(); err != nil {
		return tok, err
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// Only range errors are possible after scanNum, and ParseFloat
		// returns ±Inf for those.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return tok, l.error("number")
		}
	}
	tok.Kind = TokenNum
	tok.Num = v
	l.operand = false
	return tok, nil
}

// scanNum scans digits with at most one decimal point.
func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				return l.error("number")
			}
			dot = true
			continue
		}
		if '0' <= r && r <= '9' {
			l.buf.WriteRune(r)
			dig = true
			continue
		}
		if unicode.IsLetter(r) {
			// 2x is not a number, nor two tokens.
			l.buf.WriteRune(r)
			return l.error("number")
		}
		l.unreadRune()
		break
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

// ident classifies a scanned identifier as a function, constant, or variable.
func (l *lexer) ident(tok Token) Token {
	name := l.buf.String()
	if f := l.p.function(name); f != FuncNone {
		tok.Kind = TokenFunc
		tok.Func = f
		l.operand = true
		return tok
	}
	l.operand = false
	if v, ok := l.p.constant(name); ok {
		tok.Kind = TokenNum
		tok.Num = v
		return tok
	}
	tok.Kind = TokenVar
	tok.Name = name
	return tok
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the column of the rune that caused the error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
