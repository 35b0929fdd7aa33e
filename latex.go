package deriv

import "strings"

// LaTeX renders an expression as LaTeX math.
func (n *Node) LaTeX() string {
	var b strings.Builder
	n.latex(&b)
	return b.String()
}

func (n *Node) latex(b *strings.Builder) {
	if n == nil {
		b.WriteString(`\text{invalid}`)
		return
	}
	switch n.kind {
	case NodeNone:
		b.WriteString(`\text{invalid}`)
	case NodeNum:
		b.WriteString(formatNum(n.num))
	case NodeVar:
		b.WriteString(n.name)
		if !n.left.isNum(1) {
			b.WriteString("^{")
			n.left.latex(b)
			b.WriteByte('}')
		}
	case NodeCall:
		switch n.fn {
		case FuncAbs:
			b.WriteString(`\left|`)
			n.left.latex(b)
			b.WriteString(`\right|`)
			return
		case FuncCos, FuncSin, FuncTan, FuncSec, FuncCsc, FuncCot,
			FuncArccos, FuncArcsin, FuncArctan, FuncLn, FuncLog:
			b.WriteByte('\\')
			b.WriteString(n.fn.String())
		default:
			b.WriteString(`\operatorname{`)
			b.WriteString(n.fn.String())
			b.WriteByte('}')
		}
		b.WriteString(`\left(`)
		n.left.latex(b)
		b.WriteString(`\right)`)
	case NodePow:
		if n.left.atomic() {
			n.left.latex(b)
		} else {
			b.WriteString(`\left(`)
			n.left.latex(b)
			b.WriteString(`\right)`)
		}
		b.WriteString("^{")
		n.right.latex(b)
		b.WriteByte('}')
	case NodeDiv:
		b.WriteString(`\frac{`)
		n.left.latex(b)
		b.WriteString("}{")
		n.right.latex(b)
		b.WriteByte('}')
	case NodeAdd, NodeSub, NodeMul:
		b.WriteString(`\left(`)
		n.left.latex(b)
		switch n.kind {
		case NodeAdd:
			b.WriteString(" + ")
		case NodeSub:
			b.WriteString(" - ")
		default:
			b.WriteString(` \cdot `)
		}
		n.right.latex(b)
		b.WriteString(`\right)`)
	default:
		panic("deriv: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// atomic reports whether n renders without needing grouping as a base.
func (n *Node) atomic() bool {
	if n == nil {
		return true
	}
	switch n.kind {
	case NodeNum:
		return n.num >= 0
	case NodeVar:
		return n.left.isNum(1)
	case NodeCall, NodeAdd, NodeSub, NodeMul:
		// Calls and parenthesized operations group themselves.
		return true
	default:
		return false
	}
}
