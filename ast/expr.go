package ast

import (
	"fmt"
	"strings"
)

type Expr interface {
	Node
	exprNode()
}

type StringLiteral struct {
	S     Span
	Value string
}

func (s *StringLiteral) NodeKind() string { return "StringLiteral" }
func (s *StringLiteral) exprNode()        {}
func (s *StringLiteral) GetSpan() Span    { return s.S }
func (s *StringLiteral) String() string   { return fmt.Sprintf("String(%q)", s.Value) }

type NumberLiteral struct {
	S      Span
	Lexeme string
}

func (n *NumberLiteral) NodeKind() string { return "NumberLiteral" }
func (n *NumberLiteral) exprNode()        {}
func (n *NumberLiteral) GetSpan() Span    { return n.S }
func (n *NumberLiteral) String() string   { return fmt.Sprintf("Number(%s)", n.Lexeme) }

type BoolLiteral struct {
	S     Span
	Value bool
}

func (b *BoolLiteral) NodeKind() string { return "BoolLiteral" }
func (b *BoolLiteral) exprNode()        {}
func (b *BoolLiteral) GetSpan() Span    { return b.S }
func (b *BoolLiteral) String() string   { return fmt.Sprintf("Bool(%t)", b.Value) }

type NullLiteral struct {
	S Span
}

func (n *NullLiteral) NodeKind() string { return "NullLiteral" }
func (n *NullLiteral) exprNode()        {}
func (n *NullLiteral) GetSpan() Span    { return n.S }
func (n *NullLiteral) String() string   { return "Null" }

type Identifier struct {
	S    Span
	Name string
}

func (i *Identifier) NodeKind() string { return "Identifier" }
func (i *Identifier) exprNode()        {}
func (i *Identifier) GetSpan() Span    { return i.S }
func (i *Identifier) String() string   { return fmt.Sprintf("Ident(%s)", i.Name) }

type UnaryExpr struct {
	S     Span
	Op    string
	Right Expr
}

func (u *UnaryExpr) NodeKind() string { return "UnaryExpr" }
func (u *UnaryExpr) exprNode()        {}
func (u *UnaryExpr) GetSpan() Span    { return u.S }
func (u *UnaryExpr) String() string {
	return fmt.Sprintf("Unary(%s %s)", u.Op, u.Right.String())
}

type BinaryExpr struct {
	S     Span
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinaryExpr) NodeKind() string { return "BinaryExpr" }
func (b *BinaryExpr) exprNode()        {}
func (b *BinaryExpr) GetSpan() Span    { return b.S }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("Binary(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

type CallExpr struct {
	S      Span
	Callee string
	Args   []Expr
}

func (c *CallExpr) NodeKind() string { return "CallExpr" }
func (c *CallExpr) exprNode()        {}
func (c *CallExpr) GetSpan() Span    { return c.S }
func (c *CallExpr) String() string {
	return fmt.Sprintf("Call(%s%s)", c.Callee, joinExprs(c.Args, true))
}

type ArrayLiteralExpr struct {
	S        Span
	Elements []Expr
}

func (a *ArrayLiteralExpr) NodeKind() string { return "ArrayLiteralExpr" }
func (a *ArrayLiteralExpr) exprNode()        {}
func (a *ArrayLiteralExpr) GetSpan() Span    { return a.S }
func (a *ArrayLiteralExpr) String() string {
	return fmt.Sprintf("Array([%s])", joinExprs(a.Elements, false))
}

type MapEntry struct {
	Key   string
	Value Expr
}

type MapLiteralExpr struct {
	S       Span
	Entries []MapEntry
}

func (m *MapLiteralExpr) NodeKind() string { return "MapLiteralExpr" }
func (m *MapLiteralExpr) exprNode()        {}
func (m *MapLiteralExpr) GetSpan() Span    { return m.S }
func (m *MapLiteralExpr) String() string {
	parts := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		parts = append(parts, fmt.Sprintf("%q: %s", e.Key, e.Value.String()))
	}
	return fmt.Sprintf("Map({%s})", strings.Join(parts, ", "))
}

type IndexExpr struct {
	S     Span
	Left  Expr
	Index Expr
}

func (x *IndexExpr) NodeKind() string { return "IndexExpr" }
func (x *IndexExpr) exprNode()        {}
func (x *IndexExpr) GetSpan() Span    { return x.S }
func (x *IndexExpr) String() string {
	return fmt.Sprintf("Index(%s, %s)", x.Left.String(), x.Index.String())
}

// joinExprs renders a comma list; lead prefixes a non-empty list with ", ".
func joinExprs(exprs []Expr, lead bool) string {
	if len(exprs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	s := strings.Join(parts, ", ")
	if lead {
		return ", " + s
	}
	return s
}
