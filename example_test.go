package deriv_test

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/deriv"
)

func ExampleDerive() {
	n := deriv.MustParse("x^3 + sin(x)")
	d, err := deriv.Derive(n)
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	// Output: ((3 * x^2) + cos(x))
}

func ExampleSimplify() {
	n := deriv.MustParse("2*x*1 + 0")
	s, err := deriv.Simplify(n)
	if err != nil {
		panic(err)
	}
	fmt.Println(s)
	// Output: (2 * x)
}

func ExampleParseString() {
	// Powers of a variable replace its exponent.
	n, err := deriv.ParseString("x^2^3")
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: x^3
}

func ExampleNode_LaTeX() {
	fmt.Println(deriv.MustParse("x^2/ln(x)").LaTeX())
	// Output: \frac{x^{2}}{\ln\left(x\right)}
}

func ExampleContext_Eval() {
	ctx := deriv.NewContext(deriv.SetVar("x", big.NewFloat(2)))
	v, err := ctx.Eval(deriv.MustParse("3*x + 1"))
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: 7
}
