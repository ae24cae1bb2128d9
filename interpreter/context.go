package interpreter

import (
	"fmt"

	"yaj-editor/ast"
)

// checkpoint runs before every statement. It stops the run when the context is
// done or the statement budget is spent.
func (i *Interpreter) checkpoint(span ast.Span) error {
	if i.ctx != nil {
		select {
		case <-i.ctx.Done():
			return fmt.Errorf("%w at line %d: %v", ErrCancelled, span.Line, i.ctx.Err())
		default:
		}
	}
	i.steps++
	if i.maxSteps > 0 && i.steps > i.maxSteps {
		return fmt.Errorf("%w (%d statements) at line %d", ErrStepLimit, i.maxSteps, span.Line)
	}
	return nil
}

// Steps reports how many statements the last run executed.
func (i *Interpreter) Steps() int { return i.steps }
