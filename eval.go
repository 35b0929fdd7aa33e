package deriv

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions numerically. It is not safe
// to use a Context concurrently.
type Context struct {
	stack []*big.Float
	names map[string]*big.Float
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression using the context's variables. The result is
// a new value owned by the caller.
func (ctx *Context) Eval(n *Node) (*big.Float, error) {
	ctx.stack = ctx.stack[:0]
	if err := n.eval(ctx); err != nil {
		return nil, err
	}
	if len(ctx.stack) != 1 {
		panic("deriv: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	return new(big.Float).Copy(ctx.stack[0]), nil
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Copy variables. (We always need a copy in case of Set.) If we have the
	// same precision, we can just copy pointers.
	if n.prec == ctx.prec {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ctx.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("deriv: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// eval pushes the node's value to the context's stack.
func (n *Node) eval(ctx *Context) error {
	if n == nil {
		return &UnsupportedError{Op: "evaluate"}
	}
	switch n.kind {
	case NodeNum:
		if math.IsNaN(n.num) {
			return &DomainError{Func: "number"}
		}
		ctx.push().SetFloat64(n.num)
	case NodeVar:
		v := ctx.names[n.name]
		if v == nil {
			return &NameError{Name: n.name}
		}
		ctx.push().Set(v)
		if n.left.isNum(1) {
			return nil
		}
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		return pow(ctx.top(), r)
	case NodeCall:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		return n.fn.eval(ctx.top())
	case NodeAdd:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return &DomainError{X: r, Func: "+"}
		}
		l.Add(l, r)
	case NodeSub:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return &DomainError{X: r, Func: "-"}
		}
		l.Sub(l, r)
	case NodeMul:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return &DomainError{X: r, Func: "*"}
		}
		l.Mul(l, r)
	case NodeDiv:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case NodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		return pow(ctx.top(), r)
	default:
		return &UnsupportedError{Op: "evaluate", Node: n}
	}
	return nil
}

// pow sets x to x^y.
func pow(x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		x.SetInt64(1)
		return nil
	case x.Sign() == 0:
		if y.Signbit() {
			x.SetInf(false)
		}
		return nil
	case x.Signbit():
		// A negative base is only allowed with an integer exponent.
		if !y.IsInt() {
			return &DomainError{X: new(big.Float).Copy(x), Func: "^"}
		}
		i, _ := y.Int(nil)
		x.Neg(x)
		if err := catchNaN(x, "^", func() { bigfloat.Pow(x, x, y) }); err != nil {
			return err
		}
		if i.Bit(0) == 1 {
			x.Neg(x)
		}
		return nil
	}
	return catchNaN(x, "^", func() { bigfloat.Pow(x, x, y) })
}

// eval sets x to f(x).
func (f Func) eval(x *big.Float) error {
	switch f {
	case FuncLn:
		if x.Sign() <= 0 {
			return &DomainError{X: new(big.Float).Copy(x), Func: f.String()}
		}
		in := new(big.Float).Copy(x)
		return catchNaN(in, f.String(), func() { bigfloat.Log(x, in) })
	case FuncLog:
		if x.Sign() <= 0 {
			return &DomainError{X: new(big.Float).Copy(x), Func: f.String()}
		}
		in := new(big.Float).Copy(x)
		return catchNaN(in, f.String(), func() {
			bigfloat.Log(x, in)
			in.SetFloat64(10).SetPrec(x.Prec())
			bigfloat.Log(in, in)
			x.Quo(x, in)
		})
	case FuncAbs:
		x.Abs(x)
		return nil
	}
	// Trig functions are not yet implemented in bigfloat, so they are
	// computed in float64.
	v, _ := x.Float64()
	r := f.float(v)
	if math.IsNaN(r) {
		return &DomainError{X: new(big.Float).Copy(x), Func: f.String()}
	}
	x.SetFloat64(r)
	return nil
}

// float computes f(v) in float64. The result is NaN if f is not a function
// or v is outside its domain.
func (f Func) float(v float64) float64 {
	switch f {
	case FuncCos:
		return math.Cos(v)
	case FuncSin:
		return math.Sin(v)
	case FuncTan:
		return math.Tan(v)
	case FuncSec:
		return 1 / math.Cos(v)
	case FuncCsc:
		return 1 / math.Sin(v)
	case FuncCot:
		return math.Cos(v) / math.Sin(v)
	case FuncArccos:
		return math.Acos(v)
	case FuncArcsin:
		return math.Asin(v)
	case FuncArctan:
		return math.Atan(v)
	case FuncArcsec:
		return math.Acos(1 / v)
	case FuncArccsc:
		return math.Asin(1 / v)
	case FuncArccot:
		return math.Atan(1 / v)
	case FuncLn:
		return math.Log(v)
	case FuncLog:
		return math.Log10(v)
	case FuncAbs:
		return math.Abs(v)
	default:
		return math.NaN()
	}
}

// catchNaN calls f and converts a big.ErrNaN panic into a DomainError for x.
func catchNaN(x *big.Float, fn string, f func()) (err error) {
	arg := new(big.Float).Copy(x)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok || !errors.As(e, &big.ErrNaN{}) {
			panic(r)
		}
		err = &DomainError{X: arg, Func: fn}
	}()
	f()
	return nil
}

// EvalAt is a shortcut to evaluate an expression in float64 with a single
// variable binding.
func EvalAt(n *Node, name string, x float64) (float64, error) {
	ctx := NewContext(Prec(53), SetVar(name, big.NewFloat(x)))
	r, err := ctx.Eval(n)
	if err != nil {
		return 0, err
	}
	v, _ := r.Float64()
	return v, nil
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument, or nil if it is not a number.
	X *big.Float
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	x := "NaN"
	if err.X != nil {
		x = err.X.String()
	}
	r := x + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
