package deriv

import (
	"encoding/json"
	"fmt"
)

// Tree is a plain-data view of a Node, with one field set per node kind. It is
// the JSON shape of an expression.
type Tree struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value,omitempty"`
	Name  string   `json:"name,omitempty"`
	Func  string   `json:"func,omitempty"`
	Exp   *Tree    `json:"exp,omitempty"`
	Arg   *Tree    `json:"arg,omitempty"`
	Left  *Tree    `json:"left,omitempty"`
	Right *Tree    `json:"right,omitempty"`
}

var jsonTypes = map[NodeKind]string{
	NodeNum:  "num",
	NodeVar:  "var",
	NodeCall: "call",
	NodeAdd:  "add",
	NodeSub:  "sub",
	NodeMul:  "mul",
	NodeDiv:  "div",
	NodePow:  "pow",
}

// Tree returns the plain-data view of the expression.
func (n *Node) Tree() *Tree {
	if n == nil {
		return nil
	}
	j := &Tree{Type: jsonTypes[n.kind]}
	switch n.kind {
	case NodeNum:
		v := n.num
		j.Value = &v
	case NodeVar:
		j.Name = n.name
		j.Exp = n.left.Tree()
	case NodeCall:
		j.Func = n.fn.String()
		j.Arg = n.left.Tree()
	default:
		j.Left = n.left.Tree()
		j.Right = n.right.Tree()
	}
	return j
}

// MarshalJSON encodes the tree as nested objects with a "type" field.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.kind == NodeNone {
		return nil, &UnsupportedError{Op: "encode", Node: n}
	}
	return json.Marshal(n.Tree())
}

// UnmarshalExpr decodes a tree encoded by MarshalJSON.
func UnmarshalExpr(data []byte) (*Node, error) {
	var j Tree
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return j.Node()
}

// Node converts the plain-data view back to an expression.
func (j *Tree) Node() (*Node, error) {
	if j == nil {
		return nil, fmt.Errorf("missing expression")
	}
	sub := func(field string, c *Tree) (*Node, error) {
		if c == nil {
			return nil, fmt.Errorf("%s: missing %q", j.Type, field)
		}
		n, err := c.Node()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", j.Type, field, err)
		}
		return n, nil
	}
	switch j.Type {
	case "num":
		if j.Value == nil {
			return nil, fmt.Errorf("num: missing \"value\"")
		}
		return Num(*j.Value), nil
	case "var":
		if j.Name == "" {
			return nil, fmt.Errorf("var: missing \"name\"")
		}
		if j.Exp == nil {
			return Sym(j.Name), nil
		}
		exp, err := sub("exp", j.Exp)
		if err != nil {
			return nil, err
		}
		return Var(j.Name, exp), nil
	case "call":
		f := LookupFunc(j.Func)
		if f == FuncNone {
			return nil, fmt.Errorf("call: unknown function %q", j.Func)
		}
		arg, err := sub("arg", j.Arg)
		if err != nil {
			return nil, err
		}
		return Call(f, arg), nil
	case "add", "sub", "mul", "div", "pow":
		l, err := sub("left", j.Left)
		if err != nil {
			return nil, err
		}
		r, err := sub("right", j.Right)
		if err != nil {
			return nil, err
		}
		switch j.Type {
		case "add":
			return Add(l, r), nil
		case "sub":
			return Sub(l, r), nil
		case "mul":
			return Mul(l, r), nil
		case "div":
			return Div(l, r), nil
		default:
			return Pow(l, r), nil
		}
	case "":
		return nil, fmt.Errorf("missing \"type\"")
	default:
		return nil, fmt.Errorf("unknown type %q", j.Type)
	}
}
