package ast

import "fmt"

type Stmt interface {
	Node
	stmtNode()
}

type PrintStmt struct {
	S     Span
	Value Expr
}

func (p *PrintStmt) NodeKind() string { return "PrintStmt" }
func (p *PrintStmt) stmtNode()        {}
func (p *PrintStmt) GetSpan() Span    { return p.S }
func (p *PrintStmt) String() string   { return fmt.Sprintf("Print(%s)", p.Value.String()) }

type AssignStmt struct {
	S     Span
	Name  string
	Value Expr
}

func (a *AssignStmt) NodeKind() string { return "AssignStmt" }
func (a *AssignStmt) stmtNode()        {}
func (a *AssignStmt) GetSpan() Span    { return a.S }
func (a *AssignStmt) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Name, a.Value.String())
}

// a[i] = value
type IndexAssignStmt struct {
	S     Span
	Name  string
	Index Expr
	Value Expr
}

func (x *IndexAssignStmt) NodeKind() string { return "IndexAssignStmt" }
func (x *IndexAssignStmt) stmtNode()        {}
func (x *IndexAssignStmt) GetSpan() Span    { return x.S }
func (x *IndexAssignStmt) String() string {
	return fmt.Sprintf("IndexAssign(%s[%s] = %s)", x.Name, x.Index.String(), x.Value.String())
}

// e.g. push(a, 1)
type ExprStmt struct {
	S    Span
	Expr Expr
}

func (e *ExprStmt) NodeKind() string { return "ExprStmt" }
func (e *ExprStmt) stmtNode()        {}
func (e *ExprStmt) GetSpan() Span    { return e.S }
func (e *ExprStmt) String() string   { return fmt.Sprintf("Expr(%s)", e.Expr.String()) }

type IfStmt struct {
	S         Span
	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

func (i *IfStmt) NodeKind() string { return "IfStmt" }
func (i *IfStmt) stmtNode()        {}
func (i *IfStmt) GetSpan() Span    { return i.S }
func (i *IfStmt) String() string   { return fmt.Sprintf("If(%s)", i.Condition.String()) }

type WhileStmt struct {
	S         Span
	Condition Expr
	Body      []Stmt
}

func (w *WhileStmt) NodeKind() string { return "WhileStmt" }
func (w *WhileStmt) stmtNode()        {}
func (w *WhileStmt) GetSpan() Span    { return w.S }
func (w *WhileStmt) String() string   { return fmt.Sprintf("While(%s)", w.Condition.String()) }

type ForStmt struct {
	S     Span
	Var   string
	Start Expr
	End   Expr
	Step  Expr // nil means 1 or -1 depending on direction
	Body  []Stmt
}

func (f *ForStmt) NodeKind() string { return "ForStmt" }
func (f *ForStmt) stmtNode()        {}
func (f *ForStmt) GetSpan() Span    { return f.S }
func (f *ForStmt) String() string {
	if f.Step == nil {
		return fmt.Sprintf("For(%s = %s to %s)", f.Var, f.Start.String(), f.End.String())
	}
	return fmt.Sprintf("For(%s = %s to %s step %s)", f.Var, f.Start.String(), f.End.String(), f.Step.String())
}

// for each x in expr
// for each x, i in expr
type ForEachStmt struct {
	S        Span
	Var      string
	IndexVar string
	Iterable Expr
	Body     []Stmt
}

func (f *ForEachStmt) NodeKind() string { return "ForEachStmt" }
func (f *ForEachStmt) stmtNode()        {}
func (f *ForEachStmt) GetSpan() Span    { return f.S }
func (f *ForEachStmt) String() string {
	if f.IndexVar != "" {
		return fmt.Sprintf("ForEach(%s, %s in %s)", f.Var, f.IndexVar, f.Iterable.String())
	}
	return fmt.Sprintf("ForEach(%s in %s)", f.Var, f.Iterable.String())
}

type FunctionDecl struct {
	S      Span
	Name   string
	Params []string
	Body   []Stmt
}

func (f *FunctionDecl) NodeKind() string { return "FunctionDecl" }
func (f *FunctionDecl) stmtNode()        {}
func (f *FunctionDecl) GetSpan() Span    { return f.S }
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("Function(%s, params=%v)", f.Name, f.Params)
}

// Value is nil for a bare return.
type ReturnStmt struct {
	S     Span
	Value Expr
}

func (r *ReturnStmt) NodeKind() string { return "ReturnStmt" }
func (r *ReturnStmt) stmtNode()        {}
func (r *ReturnStmt) GetSpan() Span    { return r.S }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "Return"
	}
	return fmt.Sprintf("Return(%s)", r.Value.String())
}

type BreakStmt struct{ S Span }

func (b *BreakStmt) NodeKind() string { return "BreakStmt" }
func (b *BreakStmt) stmtNode()        {}
func (b *BreakStmt) GetSpan() Span    { return b.S }
func (b *BreakStmt) String() string   { return "Break" }

type ContinueStmt struct{ S Span }

func (c *ContinueStmt) NodeKind() string { return "ContinueStmt" }
func (c *ContinueStmt) stmtNode()        {}
func (c *ContinueStmt) GetSpan() Span    { return c.S }
func (c *ContinueStmt) String() string   { return "Continue" }
