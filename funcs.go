package deriv

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is an elementary function of one argument.
type Func int8

const (
	FuncNone Func = iota

	FuncCos
	FuncSin
	FuncTan
	FuncSec
	FuncCsc
	FuncCot
	FuncArccos
	FuncArcsin
	FuncArctan
	FuncArcsec
	FuncArccsc
	FuncArccot
	FuncLn
	FuncLog // base 10
	FuncAbs
)

var funcNames = [...]string{
	FuncNone:   "none",
	FuncCos:    "cos",
	FuncSin:    "sin",
	FuncTan:    "tan",
	FuncSec:    "sec",
	FuncCsc:    "csc",
	FuncCot:    "cot",
	FuncArccos: "arccos",
	FuncArcsin: "arcsin",
	FuncArctan: "arctan",
	FuncArcsec: "arcsec",
	FuncArccsc: "arccsc",
	FuncArccot: "arccot",
	FuncLn:     "ln",
	FuncLog:    "log",
	FuncAbs:    "abs",
}

// String returns the name of the function as it is written in expressions.
func (f Func) String() string {
	if f < 0 || int(f) >= len(funcNames) {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	return funcNames[f]
}

// globalfuncs maps function names to functions. It is never modified.
var globalfuncs = func() map[string]Func {
	m := make(map[string]Func, len(funcNames)-1)
	for f := FuncCos; int(f) < len(funcNames); f++ {
		m[funcNames[f]] = f
	}
	return m
}()

// LookupFunc returns the function with the given name, or FuncNone if there
// is none.
func LookupFunc(name string) Func {
	return globalfuncs[name]
}

// globalconsts maps reserved constant names to functions computing their
// values. It is never modified.
var globalconsts = map[string]func(out *big.Float) *big.Float{
	"pi": bigfloat.Pi,
	"e": func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	},
}

// constvals holds the float64 values of globalconsts.
var constvals = func() map[string]float64 {
	m := make(map[string]float64, len(globalconsts))
	for k, f := range globalconsts {
		v, _ := f(new(big.Float).SetPrec(64)).Float64()
		m[k] = v
	}
	return m
}()

// Constant returns the value of a reserved constant name.
func Constant(name string) (float64, bool) {
	v, ok := constvals[name]
	return v, ok
}
