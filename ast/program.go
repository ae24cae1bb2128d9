package ast

import "strings"

// Program is the root of a parsed source file.
type Program struct {
	Stmts []Stmt
}

func (p *Program) NodeKind() string { return "Program" }
func (p *Program) GetSpan() Span    { return Span{Line: 1, Col: 1} }

// String renders the tree with two-space indentation, one node per line.
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("Program\n")
	writeBlock(&b, p.Stmts, 1)
	return b.String()
}

func writeBlock(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		writeLine(b, depth, s.String())
		switch st := s.(type) {
		case *IfStmt:
			writeLine(b, depth+1, "then:")
			writeBlock(b, st.Then, depth+2)
			if len(st.Else) > 0 {
				writeLine(b, depth+1, "else:")
				writeBlock(b, st.Else, depth+2)
			}
		case *WhileStmt:
			writeBlock(b, st.Body, depth+1)
		case *ForStmt:
			writeBlock(b, st.Body, depth+1)
		case *ForEachStmt:
			writeBlock(b, st.Body, depth+1)
		case *FunctionDecl:
			writeBlock(b, st.Body, depth+1)
		}
	}
}

func writeLine(b *strings.Builder, depth int, s string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(s)
	b.WriteByte('\n')
}
