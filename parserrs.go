package deriv

import (
	"errors"
	"strconv"
)

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis, or of the end of the
	// input if an open parenthesis was never closed.
	Col int
	// Left is the unmatched open parenthesis, if any.
	Left string
	// Right is the unmatched close parenthesis, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close paren "+err.Right+" with no open paren")
	}
	return errpos(err.Col, "open paren "+err.Left+" with no close paren")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where it cannot appear, such as
// an operator where an operand is expected. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token.
	Token string
	// Want describes what the parser expected instead.
	Want string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token)+", want "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// MalformedError is an error indicating a token sequence that does not reduce
// to a single expression, e.g. an empty input or two operands with no
// operator between them. It implements InputError.
type MalformedError struct {
	// Col is the position where the problem was detected.
	Col int
	// Reason describes the problem.
	Reason string
}

func (err *MalformedError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *MalformedError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*MalformedError)(nil)
	_ InputError = (*LexError)(nil)
)

var (
	// ErrDivideByZero is the cause of an ArithmeticError raised when the
	// simplifier finds a literal zero denominator.
	ErrDivideByZero = errors.New("division by zero")
	// ErrUnsupported is the cause of an UnsupportedError.
	ErrUnsupported = errors.New("unsupported operation")
)

// ArithmeticError is an error from simplifying an expression whose value is
// undefined. It unwraps to its cause, currently always ErrDivideByZero.
type ArithmeticError struct {
	// Expr is the offending subexpression.
	Expr *Node
	// Err is the cause.
	Err error
}

func (err *ArithmeticError) Error() string {
	return err.Err.Error() + " in " + err.Expr.String()
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}

// UnsupportedError is an error from an operation applied to a node it does
// not handle, such as differentiating an invalid node. It unwraps to
// ErrUnsupported.
type UnsupportedError struct {
	// Op is the operation that was attempted.
	Op string
	// Node is the node the operation does not handle.
	Node *Node
}

func (err *UnsupportedError) Error() string {
	switch {
	case err.Node == nil:
		return "cannot " + err.Op + " nil node"
	case err.Node.kind == NodeCall:
		return "cannot " + err.Op + " call of " + err.Node.fn.String()
	default:
		return "cannot " + err.Op + " " + err.Node.kind.String() + " node"
	}
}

func (err *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
