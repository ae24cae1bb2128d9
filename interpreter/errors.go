package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"yaj-editor/ast"
)

var (
	// ErrCancelled is returned by Run when its context is done.
	ErrCancelled = errors.New("run cancelled")
	// ErrStepLimit is returned by Run when the statement budget is exhausted.
	ErrStepLimit = errors.New("step limit exceeded")
	// ErrInternal wraps a panic recovered from the evaluator.
	ErrInternal = errors.New("internal interpreter error")
)

type returnSignal struct{ val Value }

func (r returnSignal) Error() string { return "return" }

type breakSignal struct{ span ast.Span }

func (b breakSignal) Error() string { return "break" }

type continueSignal struct{ span ast.Span }

func (c continueSignal) Error() string { return "continue" }

// RuntimeError is reported through the error sink. Its text names the location,
// echoes the source line with a caret under the column, and lists the call stack.
type RuntimeError struct {
	File  string
	Span  ast.Span
	Msg   string
	Line  string
	Stack []string
}

func (e *RuntimeError) Error() string {
	loc := fmt.Sprintf("line %d, column %d", e.Span.Line, e.Span.Col)
	if e.File != "" {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Span.Line, e.Span.Col)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Runtime error at %s\n", loc)
	fmt.Fprintf(&b, "  %s\n", e.Msg)

	if e.Line != "" && e.Span.Line > 0 {
		prefix := fmt.Sprintf("  %d | ", e.Span.Line)
		b.WriteString(prefix + e.Line + "\n")
		caret := len(prefix) + e.Span.Col - 1
		if caret < 0 {
			caret = 0
		}
		b.WriteString(strings.Repeat(" ", caret) + "^\n")
	}

	if len(e.Stack) > 0 {
		b.WriteString("Stack:\n")
		for _, fn := range e.Stack {
			fmt.Fprintf(&b, "  at %s()\n", fn)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
