package compiler

import "fmt"

// ---------------------------------------------------------------------------
// AST: expression tree for infix arithmetic
// ---------------------------------------------------------------------------

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Expr is the interface implemented by all expression nodes. The node set
// is closed: IntLit, FloatLit and BinaryExpr are the only kinds, and the
// code generator's case analysis is exhaustive over them.
type Expr interface {
	Span() Span
	expr() // marker method
}

// OpKind identifies a binary operator in the expression tree.
type OpKind int

const (
	OpKindAdd OpKind = iota
	OpKindSub
	OpKindMul
	OpKindDiv
)

var opKindNames = map[OpKind]string{
	OpKindAdd: "+",
	OpKindSub: "-",
	OpKindMul: "*",
	OpKindDiv: "/",
}

func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// IntLit represents an integer literal.
type IntLit struct {
	SpanVal Span
	Value   int64
}

func (n *IntLit) Span() Span { return n.SpanVal }
func (n *IntLit) expr()      {}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	SpanVal Span
	Value   float64
}

func (n *FloatLit) Span() Span { return n.SpanVal }
func (n *FloatLit) expr()      {}

// BinaryExpr represents a binary operation. Left and Right are owned
// exclusively by this node: the parser builds a tree, never a DAG.
type BinaryExpr struct {
	SpanVal Span
	Op      OpKind
	Left    Expr
	Right   Expr
}

func (n *BinaryExpr) Span() Span { return n.SpanVal }
func (n *BinaryExpr) expr()      {}
