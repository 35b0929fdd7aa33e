package deriv

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. Nodes are
// immutable once constructed; every transformation in this package returns a
// new tree, so subtrees may safely appear in more than one result.
type Node struct {
	kind NodeKind

	num  float64
	name string
	fn   Func

	// left is the exponent of a variable, the argument of a call, or the
	// left operand of a binary operation.
	left  *Node
	right *Node
}

// NodeKind identifies the shape of a Node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNum  // literal num
	NodeVar  // name raised to left
	NodeCall // fn applied to left

	NodeAdd // left + right
	NodeSub // left - right
	NodeMul // left * right
	NodeDiv // left / right
	NodePow // left ^ right, where left is not a bare variable
)

var nodeKindNames = [...]string{
	NodeNone: "None",
	NodeNum:  "Num",
	NodeVar:  "Var",
	NodeCall: "Call",
	NodeAdd:  "Add",
	NodeSub:  "Sub",
	NodeMul:  "Mul",
	NodeDiv:  "Div",
	NodePow:  "Pow",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// Num creates a literal number.
func Num(v float64) *Node {
	return &Node{kind: NodeNum, num: v}
}

// Var creates a variable raised to an exponent. A nil exponent means 1.
func Var(name string, exp *Node) *Node {
	if exp == nil {
		exp = Num(1)
	}
	return &Node{kind: NodeVar, name: name, left: exp}
}

// Sym creates a bare variable, i.e. a variable raised to 1.
func Sym(name string) *Node {
	return Var(name, Num(1))
}

// Call creates an application of an elementary function.
func Call(fn Func, arg *Node) *Node {
	return &Node{kind: NodeCall, fn: fn, left: arg}
}

// Add creates l + r.
func Add(l, r *Node) *Node { return &Node{kind: NodeAdd, left: l, right: r} }

// Sub creates l - r.
func Sub(l, r *Node) *Node { return &Node{kind: NodeSub, left: l, right: r} }

// Mul creates l * r.
func Mul(l, r *Node) *Node { return &Node{kind: NodeMul, left: l, right: r} }

// Div creates l / r.
func Div(l, r *Node) *Node { return &Node{kind: NodeDiv, left: l, right: r} }

// Pow creates a general exponentiation. Unlike the parser, Pow does not fold
// a variable base into a Var node.
func Pow(base, exp *Node) *Node { return &Node{kind: NodePow, left: base, right: exp} }

// binary creates a binary operation of the given kind. An exponentiation of a
// variable replaces the variable's exponent, so x^2 is Var(x, 2) and x^2^3 is
// Var(x, 3).
func binary(op NodeKind, l, r *Node) *Node {
	if op == NodePow && l.kind == NodeVar {
		return Var(l.name, r)
	}
	return &Node{kind: op, left: l, right: r}
}

// Kind returns the shape of the node.
func (n *Node) Kind() NodeKind { return n.kind }

// Value returns the value of a NodeNum, or 0 for any other kind.
func (n *Node) Value() float64 { return n.num }

// Name returns the name of a NodeVar.
func (n *Node) Name() string { return n.name }

// Func returns the function of a NodeCall.
func (n *Node) Func() Func { return n.fn }

// Exponent returns the exponent of a NodeVar or NodePow.
func (n *Node) Exponent() *Node {
	if n.kind == NodePow {
		return n.right
	}
	return n.left
}

// Arg returns the argument of a NodeCall.
func (n *Node) Arg() *Node { return n.left }

// Left returns the left operand of a binary node, the exponent of a variable,
// or the argument of a call.
func (n *Node) Left() *Node { return n.left }

// Right returns the right operand of a binary node.
func (n *Node) Right() *Node { return n.right }

// isNum checks whether n is the literal v. The comparison is exact.
func (n *Node) isNum(v float64) bool {
	return n != nil && n.kind == NodeNum && n.num == v
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind {
		return false
	}
	switch n.kind {
	case NodeNum:
		return n.num == m.num
	case NodeVar:
		return n.name == m.name && n.left.Equal(m.left)
	case NodeCall:
		return n.fn == m.fn && n.left.Equal(m.left)
	default:
		return n.left.Equal(m.left) && n.right.Equal(m.right)
	}
}

// HasVariable reports whether any variable occurs in the tree.
func (n *Node) HasVariable() bool {
	if n == nil {
		return false
	}
	if n.kind == NodeVar {
		return true
	}
	return n.left.HasVariable() || n.right.HasVariable()
}

// Vars returns the sorted names of the variables that occur in the tree.
func (n *Node) Vars() []string {
	seen := make(map[string]bool)
	n.vars(seen)
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

func (n *Node) vars(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == NodeVar {
		seen[n.name] = true
	}
	n.left.vars(seen)
	n.right.vars(seen)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// String renders the expression. Binary operations are fully parenthesized
// and a general power's exponent is too, but operands of ^ are written as is,
// so x^(y^2) renders as x^y^2. Missing operands render as $invalid$.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteString("$invalid$")
		return
	}
	switch n.kind {
	case NodeNone:
		b.WriteString("$invalid$")
	case NodeNum:
		b.WriteString(formatNum(n.num))
	case NodeVar:
		b.WriteString(n.name)
		if !n.left.isNum(1) {
			b.WriteByte('^')
			n.left.fmt(b)
		}
	case NodeCall:
		b.WriteString(n.fn.String())
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case NodePow:
		n.left.fmt(b)
		b.WriteString("^(")
		n.right.fmt(b)
		b.WriteByte(')')
	case NodeAdd, NodeSub, NodeMul, NodeDiv:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(opstrs[n.kind])
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("deriv: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var opstrs = map[NodeKind]string{
	NodeAdd: " + ",
	NodeSub: " - ",
	NodeMul: " * ",
	NodeDiv: " / ",
	NodePow: "^",
}

// formatNum formats a number in plain decimal, with no exponent and no
// trailing zeros.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
