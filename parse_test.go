package deriv

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	x, y := Sym("x"), Sym("y")
	cases := []struct {
		name string
		src  string
		want *Node
		opts []ParseOption
	}{
		{"num", "1", Num(1), nil},
		{"var", "x", x, nil},
		{"paren", "((x))", x, nil},
		{"add", "1+x", Add(Num(1), x), nil},
		{"mul-add", "2+3*4", Add(Num(2), Mul(Num(3), Num(4))), nil},
		{"add-mul", "1*2+3", Add(Mul(Num(1), Num(2)), Num(3)), nil},
		{"pow-mul-add", "1+2*3^2", Add(Num(1), Mul(Num(2), Pow(Num(3), Num(2)))), nil},
		{"sub-left", "8-3-2", Sub(Sub(Num(8), Num(3)), Num(2)), nil},
		{"div-left", "8/4/2", Div(Div(Num(8), Num(4)), Num(2)), nil},
		{"mul-div-left", "8/4*2", Mul(Div(Num(8), Num(4)), Num(2)), nil},
		{"pow-left", "2^3^2", Pow(Pow(Num(2), Num(3)), Num(2)), nil},
		{"var-pow", "x^2", Var("x", Num(2)), nil},
		{"var-pow-pow", "x^2^3", Var("x", Num(3)), nil},
		{"var-pow-expr", "x^(y+1)", Var("x", Add(y, Num(1))), nil},
		{"paren-var-pow", "(x)^2", Var("x", Num(2)), nil},
		{"group-pow", "(x+1)^2", Pow(Add(x, Num(1)), Num(2)), nil},
		{"mul-var-pow", "2*x^2", Mul(Num(2), Var("x", Num(2))), nil},
		{"neg-num", "-2*x", Mul(Num(-2), x), nil},
		{"neg-exp", "x^-1", Var("x", Num(-1)), nil},
		{"sub-num", "x-2", Sub(x, Num(2)), nil},
		{"sub-neg", "x - -2", Sub(x, Num(-2)), nil},
		{"call", "sin(x)", Call(FuncSin, x), nil},
		{"call-expr", "sin((x+1)*2)", Call(FuncSin, Mul(Add(x, Num(1)), Num(2))), nil},
		{"call-call", "cos(sin(x))", Call(FuncCos, Call(FuncSin, x)), nil},
		{"call-pow", "2*sin(x)^2", Mul(Num(2), Pow(Call(FuncSin, x), Num(2))), nil},
		{"call-space", "ln (x)", Call(FuncLn, x), nil},
		{"long-name", "rate*time", Mul(Sym("rate"), Sym("time")), nil},
		{"no-consts", "e^x", Var("e", x), []ParseOption{DisableConstants()}},
		{"no-funcs", "ln", Sym("ln"), []ParseOption{DisableFuncs("ln")}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseString(c.src, c.opts...)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", c.src, err)
			}
			if !got.Equal(c.want) {
				t.Errorf("%q: want %v, got %v", c.src, c.want, got)
			}
			// The rendering must read back to the same tree.
			back, err := ParseString(got.String(), c.opts...)
			if err != nil {
				t.Fatalf("%q: reparsing %q: %v", c.src, got, err)
			}
			if !back.Equal(got) {
				t.Errorf("%q: %q reparsed as %v", c.src, got, back)
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	x := Sym("x")
	cases := []struct {
		name string
		toks []Token
		want *Node
	}{
		{"var-pow", []Token{VarToken("x"), OpToken('^'), NumToken(2)}, Var("x", Num(2))},
		{"node-var-pow", []Token{NodeToken(x), OpToken('^'), NumToken(2)}, Var("x", Num(2))},
		{"node-pow", []Token{NodeToken(Add(x, Num(1))), OpToken('^'), NumToken(2)}, Pow(Add(x, Num(1)), Num(2))},
		{"call", []Token{FuncToken(FuncTan), LParen, VarToken("x"), RParen}, Call(FuncTan, x)},
		{"node-mul", []Token{NumToken(3), OpToken('*'), NodeToken(Call(FuncAbs, x))}, Mul(Num(3), Call(FuncAbs, x))},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.toks)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(c.want) {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src string
		err any
		pos int
	}{
		{"", (*MalformedError)(nil), 1},
		{"   ", (*MalformedError)(nil), 1},
		{"2+", (*MalformedError)(nil), 3},
		{"sin", (*MalformedError)(nil), 4},
		{"()", (*MalformedError)(nil), 2},
		{"sin()", (*MalformedError)(nil), 5},
		{"2 3", (*MalformedError)(nil), 3},
		{"x (1)", (*MalformedError)(nil), 3},
		{"(x+1", (*BracketError)(nil), 1},
		{"((x+1)", (*BracketError)(nil), 1},
		{"x+1)", (*BracketError)(nil), 4},
		{"(2))", (*BracketError)(nil), 4},
		{"(", (*BracketError)(nil), 1},
		{"sin(", (*BracketError)(nil), 4},
		{"(x+", (*BracketError)(nil), 1},
		{"2*(x*", (*BracketError)(nil), 3},
		{"sin(x+", (*BracketError)(nil), 4},
		{"((x+", (*BracketError)(nil), 2},
		{"(x y", (*MalformedError)(nil), 4},
		{"sin x", (*TokenError)(nil), 5},
		{"*2", (*TokenError)(nil), 1},
		{"2+)", (*TokenError)(nil), 3},
		{"-x", (*TokenError)(nil), 1},
		{"2 $", (*LexError)(nil), 3},
		{"1.2.3", (*LexError)(nil), 4},
	}
	for _, c := range cases {
		_, err := ParseString(c.src)
		if err == nil {
			t.Errorf("%q: no error", c.src)
			continue
		}
		var ok bool
		switch c.err.(type) {
		case *MalformedError:
			var e *MalformedError
			ok = errors.As(err, &e)
		case *BracketError:
			var e *BracketError
			ok = errors.As(err, &e)
		case *TokenError:
			var e *TokenError
			ok = errors.As(err, &e)
		case *LexError:
			var e *LexError
			ok = errors.As(err, &e)
		}
		if !ok {
			t.Errorf("%q: want %T, got %T (%v)", c.src, c.err, err, err)
			continue
		}
		var ierr InputError
		if !errors.As(err, &ierr) {
			t.Errorf("%q: %v is not an InputError", c.src, err)
			continue
		}
		if ierr.Pos() != c.pos {
			t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ierr.Pos(), err)
		}
	}
}

func TestBracketErrorSides(t *testing.T) {
	_, err := ParseString("(x")
	var open *BracketError
	if !errors.As(err, &open) || open.Left != "(" || open.Right != "" {
		t.Errorf("unclosed paren: got %#v", err)
	}
	_, err = ParseString("x)")
	var close *BracketError
	if !errors.As(err, &close) || close.Left != "" || close.Right != ")" {
		t.Errorf("unopened paren: got %#v", err)
	}
}

func TestMustParse(t *testing.T) {
	if n := MustParse("x^2"); !n.Equal(Var("x", Num(2))) {
		t.Errorf("want x^2, got %v", n)
	}
	defer func() {
		if recover() == nil {
			t.Error("no panic on invalid input")
		}
	}()
	MustParse("(")
}

func TestParseTokenErrors(t *testing.T) {
	cases := []struct {
		name string
		toks []Token
		pos  int
	}{
		{"eof-inside", []Token{VarToken("x"), {Kind: TokenEOF, Pos: 2}, OpToken('+'), NumToken(1)}, 2},
		{"eof-first", []Token{{Kind: TokenEOF, Pos: 1}, VarToken("x")}, 1},
		{"unknown-kind", []Token{VarToken("x"), OpToken('*'), {Kind: TokenKind(100), Pos: 3}}, 3},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			n, err := Parse(c.toks)
			var terr *TokenError
			if !errors.As(err, &terr) {
				t.Fatalf("want TokenError, got %v, %v", n, err)
			}
			if terr.Pos() != c.pos {
				t.Errorf("want error at %d, got %d (%v)", c.pos, terr.Pos(), err)
			}
		})
	}
	// A final EOF marks the end as usual.
	n, err := Parse([]Token{VarToken("x"), OpToken('+'), NumToken(1), {Kind: TokenEOF}})
	if err != nil {
		t.Fatal(err)
	}
	if want := Add(Sym("x"), Num(1)); !n.Equal(want) {
		t.Errorf("want %v, got %v", want, n)
	}
}
