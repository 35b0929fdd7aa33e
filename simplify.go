package deriv

// Simplify rewrites an expression bottom-up with a fixed set of algebraic
// rules and returns the new tree. It makes a single pass, so simplifying the
// result again occasionally simplifies further.
//
// A denominator that simplifies to exactly 0 is an ArithmeticError wrapping
// ErrDivideByZero. Invalid nodes, including nil, give an UnsupportedError.
func Simplify(n *Node) (*Node, error) {
	if n == nil {
		return nil, &UnsupportedError{Op: "simplify"}
	}
	switch n.kind {
	case NodeNum:
		return n, nil
	case NodeVar:
		exp, err := Simplify(n.left)
		if err != nil {
			return nil, err
		}
		if exp.isNum(0) {
			return Num(1), nil
		}
		return Var(n.name, exp), nil
	case NodeCall:
		arg, err := Simplify(n.left)
		if err != nil {
			return nil, err
		}
		return Call(n.fn, arg), nil
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		l, err := Simplify(n.left)
		if err != nil {
			return nil, err
		}
		r, err := Simplify(n.right)
		if err != nil {
			return nil, err
		}
		switch n.kind {
		case NodeAdd:
			return simplifyAdd(l, r), nil
		case NodeSub:
			return simplifySub(l, r)
		case NodeMul:
			return simplifyMul(l, r), nil
		case NodeDiv:
			return simplifyDiv(l, r)
		default:
			return simplifyPow(l, r)
		}
	default:
		return nil, &UnsupportedError{Op: "simplify", Node: n}
	}
}

func simplifyAdd(l, r *Node) *Node {
	switch {
	case l.kind == NodeNum && r.kind == NodeNum:
		return Num(l.num + r.num)
	case l.isNum(0):
		return r
	case r.isNum(0):
		return l
	}
	return Add(l, r)
}

func simplifySub(l, r *Node) (*Node, error) {
	switch {
	case l.kind == NodeNum && r.kind == NodeNum:
		return Num(l.num - r.num), nil
	case l.isNum(0):
		return Simplify(Mul(Num(-1), r))
	case r.isNum(0):
		return l, nil
	}
	return Sub(l, r), nil
}

func simplifyMul(l, r *Node) *Node {
	switch {
	case l.kind == NodeNum && r.kind == NodeNum:
		// This also covers negation by -1, which is only done for literals.
		return Num(l.num * r.num)
	case l.isNum(0), r.isNum(0):
		return Num(0)
	case l.isNum(1):
		return r
	case r.isNum(1):
		return l
	case r.kind == NodeDiv && r.left.isNum(1):
		// a * (1/d) -> a/d
		return Div(l, r.right)
	}
	return Mul(l, r)
}

func simplifyDiv(l, r *Node) (*Node, error) {
	switch {
	case r.isNum(0):
		return nil, &ArithmeticError{Expr: Div(l, r), Err: ErrDivideByZero}
	case l.kind == NodeNum && r.kind == NodeNum:
		return Num(l.num / r.num), nil
	case r.isNum(1):
		return l, nil
	case l.Equal(r):
		return Num(1), nil
	}
	return Div(l, r), nil
}

func simplifyPow(base, exp *Node) (*Node, error) {
	var n *Node
	switch {
	case base.isNum(0):
		n = Num(0)
	case base.isNum(1):
		n = Num(1)
	case exp.isNum(0):
		n = Num(1)
	case exp.isNum(1):
		n = base
	default:
		n = Pow(base, exp)
	}
	if base.kind == NodeVar {
		// (x^a)^b -> x^(a*b). This takes precedence over the exponent rules
		// above, so (x^a)^0 becomes x^0 rather than 1.
		e, err := Simplify(Mul(base.left, exp))
		if err != nil {
			return nil, err
		}
		n = Var(base.name, e)
	}
	return n, nil
}
