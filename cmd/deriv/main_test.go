package main

import (
	"bufio"
	"math/big"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/zephyrtronium/deriv"
)

func newTestPrinter() (*printer, *strings.Builder, *strings.Builder) {
	var out, errs strings.Builder
	p := &printer{
		w:      &out,
		errw:   &errs,
		format: (*deriv.Node).String,
	}
	return p, &out, &errs
}

func TestREPL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		errs string
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name: "one",
			in:   "x^2\n",
			out:  "x^2\nd/dx => (2 * x)\n",
		},
		{
			name: "unterminated",
			in:   "sin(x)",
			out:  "sin(x)\nd/dx => cos(x)\n",
		},
		{
			name: "blank",
			in:   "\n  \n3*x+1\n",
			out:  "((3 * x) + 1)\nd/dx => 3\n",
		},
		{
			name: "exit",
			in:   "x\nExit",
			out:  "x\nd/dx => 1\n",
		},
		{
			// A terminated Exit is an ordinary variable name.
			name: "exit-terminated",
			in:   "Exit\nsin(x)\nExit",
			out:  "Exit\nd/dx => 1\nsin(x)\nd/dx => cos(x)\n",
		},
		{
			name: "errors",
			in:   "1/0\n(x\nx+1\n",
			out:  "(1 / 0)\n(x + 1)\nd/dx => 1\n",
			errs: "division by zero in (1 / 0)\n1: open paren ( with no close paren\n",
		},
		{
			// Lines are simplified before they are differentiated.
			name: "simplify-first",
			in:   "(x+0)^2\n",
			out:  "(x + 0)^(2)\nd/dx => (2 * x)\n",
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p, out, errs := newTestPrinter()
			err := repl(bufLines{bufio.NewReader(strings.NewReader(c.in))}, p)
			assert.NoError(t, err)
			assert.Equal(t, c.out, out.String())
			assert.Equal(t, c.errs, errs.String())
		})
	}
}

func TestFile(t *testing.T) {
	p, out, _ := newTestPrinter()
	assert.NoError(t, p.file("(x+1)^2\n"))
	assert.Equal(t, "(x + 1)^(2)\nd/dx => 1\n", out.String())

	// Files are differentiated as written, without simplifying first.
	p, out, _ = newTestPrinter()
	assert.NoError(t, p.file("(x+0)^2"))
	assert.Equal(t, "(x + 0)^(2)\nd/dx => 1\n", out.String())

	p, _, _ = newTestPrinter()
	assert.Error(t, p.file("x+"))
}

func TestPrinterEval(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.ctx = deriv.NewContext(deriv.SetVar("x", big.NewFloat(2)))
	p.point = "x=2"
	assert.NoError(t, p.line("3*x+1"))
	assert.Equal(t, "((3 * x) + 1)\n    at x=2: 7\nd/dx => 3\n    at x=2: 3\n", out.String())

	p, out, _ = newTestPrinter()
	p.ctx = deriv.NewContext()
	p.point = ""
	assert.NoError(t, p.line("y"))
	assert.Equal(t, "y\n    at : undefined variable: \"y\"\nd/dx => 1\n    at : 1\n", out.String())
}

func TestPrinterFormats(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.format = (*deriv.Node).LaTeX
	assert.NoError(t, p.line("x^2"))
	assert.Equal(t, "x^{2}\nd/dx => \\left(2 \\cdot x\\right)\n", out.String())

	p, out, _ = newTestPrinter()
	p.format = jsonString
	assert.NoError(t, p.file("2"))
	assert.Equal(t, "{\"type\":\"num\",\"value\":2}\nd/dx => {\"type\":\"num\",\"value\":0}\n", out.String())
}
