// Package interpreter is the Yaj execution engine. It lexes, parses and runs a
// source text, and reports everything it prints through a Sink.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yaj-editor/ast"
	"yaj-editor/internal/logger"
	"yaj-editor/lexer"
	"yaj-editor/parser"
)

// Sink receives the engine's output. Both callbacks are invoked synchronously
// from the goroutine that called Run, one call per line.
type Sink interface {
	Out(line string)
	ErrorOut(line string)
}

type Option func(*Interpreter)

// WithFilename names the source in runtime error locations.
func WithFilename(name string) Option {
	return func(i *Interpreter) { i.filename = name }
}

// WithMaxSteps bounds the number of statements one Run may execute. 0 disables it.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

func WithLogger(l *logger.Logger) Option {
	return func(i *Interpreter) {
		if l != nil {
			i.log = l
		}
	}
}

type Interpreter struct {
	source   string
	filename string
	lines    []string
	sink     Sink
	log      *logger.Logger

	maxSteps int
	steps    int
	ctx      context.Context

	globals   map[string]Value
	locals    []map[string]Value
	funcs     map[string]*ast.FunctionDecl
	callStack []string
}

// New binds an engine to source. Output goes to sink.
func New(source string, sink Sink, opts ...Option) *Interpreter {
	i := &Interpreter{
		source:    source,
		lines:     splitLinesPreserve(source),
		sink:      sink,
		log:       logger.Nop(),
		globals:   map[string]Value{},
		locals:    []map[string]Value{},
		funcs:     map[string]*ast.FunctionDecl{},
		callStack: []string{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func splitLinesPreserve(src string) []string {
	if src == "" {
		return []string{}
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

// Source returns the text the engine was built with.
func (i *Interpreter) Source() string { return i.source }

// Lex tokenizes the source.
func (i *Interpreter) Lex() ([]lexer.Token, error) {
	return lexer.New(i.source).Tokens()
}

// Parse builds the syntax tree from tokens returned by Lex.
func (i *Interpreter) Parse(tokens []lexer.Token) (*ast.Program, error) {
	return parser.New(tokens).ParseProgram()
}

// Run lexes, parses and executes the source. Syntax and runtime errors are written
// to the sink's ErrorOut and Run returns nil. A non-nil error means the run was
// aborted: see ErrCancelled, ErrStepLimit and ErrInternal.
func (i *Interpreter) Run(ctx context.Context) error {
	start := time.Now()
	log := i.log.WithField("source_bytes", len(i.source))
	log.Debug("run started")

	toks, err := i.Lex()
	if err != nil {
		i.sink.ErrorOut(err.Error())
		log.Debug("lex failed: %v", err)
		return nil
	}
	prog, err := i.Parse(toks)
	if err != nil {
		i.sink.ErrorOut(err.Error())
		log.Debug("parse failed: %v", err)
		return nil
	}

	err = i.Exec(ctx, prog)
	log.WithFields(map[string]interface{}{
		"steps":    i.steps,
		"duration": time.Since(start).String(),
	}).Debug("run finished")
	return err
}

// Exec runs an already parsed program against this engine's state.
func (i *Interpreter) Exec(ctx context.Context, prog *ast.Program) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	i.ctx = ctx
	i.steps = 0

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	err = i.execBlock(prog.Stmts)
	if err == nil {
		return nil
	}

	var rt *RuntimeError
	switch e := err.(type) {
	case breakSignal:
		rt = i.runtimeErr(e.span, "break outside of a loop")
	case continueSignal:
		rt = i.runtimeErr(e.span, "continue outside of a loop")
	case *RuntimeError:
		rt = e
	default:
		if errors.Is(err, ErrCancelled) || errors.Is(err, ErrStepLimit) {
			return err
		}
		rt = &RuntimeError{File: i.filename, Msg: err.Error()}
	}
	i.sink.ErrorOut(rt.Error())
	return nil
}

func (i *Interpreter) inFunction() bool { return len(i.locals) > 0 }

func (i *Interpreter) currentEnv() map[string]Value {
	if i.inFunction() {
		return i.locals[len(i.locals)-1]
	}
	return i.globals
}

func (i *Interpreter) pushLocals() { i.locals = append(i.locals, map[string]Value{}) }
func (i *Interpreter) popLocals()  { i.locals = i.locals[:len(i.locals)-1] }

func (i *Interpreter) runtimeErr(span ast.Span, msg string) *RuntimeError {
	lineText := ""
	if span.Line > 0 && span.Line-1 < len(i.lines) {
		lineText = i.lines[span.Line-1]
	}

	stack := make([]string, 0, len(i.callStack))
	for idx := len(i.callStack) - 1; idx >= 0; idx-- {
		stack = append(stack, i.callStack[idx])
	}

	return &RuntimeError{
		File:  i.filename,
		Span:  span,
		Msg:   msg,
		Line:  lineText,
		Stack: stack,
	}
}

// findVarEnv finds the environment a variable lives in (locals first, then globals).
func (i *Interpreter) findVarEnv(name string) (map[string]Value, Value, bool) {
	if i.inFunction() {
		env := i.currentEnv()
		if v, ok := env[name]; ok {
			return env, v, true
		}
	}
	if v, ok := i.globals[name]; ok {
		return i.globals, v, true
	}
	return nil, Value{}, false
}

func (i *Interpreter) execBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStmt(s ast.Stmt) error {
	if err := i.checkpoint(s.GetSpan()); err != nil {
		return err
	}

	switch stmt := s.(type) {
	case *ast.FunctionDecl:
		i.funcs[stmt.Name] = stmt
		return nil

	case *ast.ReturnStmt:
		if !i.inFunction() {
			return i.runtimeErr(stmt.GetSpan(), "return is only valid inside a function")
		}
		if stmt.Value == nil {
			return returnSignal{val: NullValue()}
		}
		val, err := i.evalExpr(stmt.Value)
		if err != nil {
			return err
		}
		return returnSignal{val: val}

	case *ast.BreakStmt:
		return breakSignal{span: stmt.S}

	case *ast.ContinueStmt:
		return continueSignal{span: stmt.S}

	case *ast.AssignStmt:
		val, err := i.evalExpr(stmt.Value)
		if err != nil {
			return err
		}
		i.currentEnv()[stmt.Name] = val
		return nil

	case *ast.IndexAssignStmt:
		return i.execIndexAssign(stmt)

	case *ast.ExprStmt:
		_, err := i.evalExpr(stmt.Expr)
		return err

	case *ast.PrintStmt:
		val, err := i.evalExpr(stmt.Value)
		if err != nil {
			return err
		}
		i.sink.Out(val.ToString())
		return nil

	case *ast.IfStmt:
		cond, err := i.evalCondition(stmt.Condition, "if condition")
		if err != nil {
			return err
		}
		if cond {
			return i.execBlock(stmt.Then)
		}
		return i.execBlock(stmt.Else)

	case *ast.WhileStmt:
		for {
			if err := i.checkpoint(stmt.S); err != nil {
				return err
			}
			cond, err := i.evalCondition(stmt.Condition, "while condition")
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
			if stop, err := loopControl(i.execBlock(stmt.Body)); stop || err != nil {
				return err
			}
		}

	case *ast.ForStmt:
		return i.execFor(stmt)

	case *ast.ForEachStmt:
		return i.execForEach(stmt)

	default:
		return i.runtimeErr(s.GetSpan(), fmt.Sprintf("unsupported statement %s", s.NodeKind()))
	}
}

// loopControl folds break/continue signals from a loop body: stop is true when the
// loop must end, err is any other error to propagate.
func loopControl(err error) (stop bool, _ error) {
	switch err.(type) {
	case nil, continueSignal:
		return false, nil
	case breakSignal:
		return true, nil
	default:
		return true, err
	}
}

func (i *Interpreter) evalCondition(e ast.Expr, what string) (bool, error) {
	v, err := i.evalExpr(e)
	if err != nil {
		return false, err
	}
	if v.Kind != ValBool {
		return false, i.runtimeErr(e.GetSpan(), fmt.Sprintf("%s must be a bool, got %s", what, v.Kind))
	}
	return v.Bool, nil
}

func (i *Interpreter) execIndexAssign(stmt *ast.IndexAssignStmt) error {
	_, container, ok := i.findVarEnv(stmt.Name)
	if !ok {
		return i.runtimeErr(stmt.GetSpan(), fmt.Sprintf("undefined variable %q", stmt.Name))
	}
	iv, err := i.evalExpr(stmt.Index)
	if err != nil {
		return err
	}
	newVal, err := i.evalExpr(stmt.Value)
	if err != nil {
		return err
	}

	switch container.Kind {
	case ValArray:
		idx, err := i.toIndex(iv, stmt.Index.GetSpan())
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(container.Arr.Elems) {
			return i.runtimeErr(stmt.GetSpan(), fmt.Sprintf("array index out of bounds (index %d, size %d)", idx, len(container.Arr.Elems)))
		}
		container.Arr.Elems[idx] = newVal
		return nil

	case ValMap:
		if iv.Kind != ValString {
			return i.runtimeErr(stmt.Index.GetSpan(), "map key must be a string")
		}
		container.Map.Elems[iv.Str] = newVal
		return nil
	}
	return i.runtimeErr(stmt.GetSpan(), fmt.Sprintf("cannot index-assign into %s", container.Kind))
}

func (i *Interpreter) execFor(stmt *ast.ForStmt) error {
	startV, err := i.evalExpr(stmt.Start)
	if err != nil {
		return err
	}
	endV, err := i.evalExpr(stmt.End)
	if err != nil {
		return err
	}
	if startV.Kind != ValNumber || endV.Kind != ValNumber {
		return i.runtimeErr(stmt.GetSpan(), "for loop bounds must be numbers")
	}

	step := 1.0
	if stmt.Step != nil {
		stepV, err := i.evalExpr(stmt.Step)
		if err != nil {
			return err
		}
		if stepV.Kind != ValNumber || stepV.Number == 0 {
			return i.runtimeErr(stmt.Step.GetSpan(), "for loop step must be a non-zero number")
		}
		step = stepV.Number
	} else if startV.Number > endV.Number {
		step = -1
	}

	for cur := startV.Number; (step > 0 && cur <= endV.Number) || (step < 0 && cur >= endV.Number); cur += step {
		if err := i.checkpoint(stmt.S); err != nil {
			return err
		}
		i.currentEnv()[stmt.Var] = NumberValue(cur)
		if stop, err := loopControl(i.execBlock(stmt.Body)); stop || err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execForEach(stmt *ast.ForEachStmt) error {
	iterV, err := i.evalExpr(stmt.Iterable)
	if err != nil {
		return err
	}

	var items []Value
	switch iterV.Kind {
	case ValArray:
		items = append(items, iterV.Arr.Elems...)
	case ValMap:
		for _, k := range iterV.sortedKeys() {
			items = append(items, StringValue(k))
		}
	case ValString:
		for _, r := range iterV.Str {
			items = append(items, StringValue(string(r)))
		}
	default:
		return i.runtimeErr(stmt.Iterable.GetSpan(), fmt.Sprintf("for each expects an array, map or string, got %s", iterV.Kind))
	}

	for idx, item := range items {
		if err := i.checkpoint(stmt.S); err != nil {
			return err
		}
		env := i.currentEnv()
		env[stmt.Var] = item
		if stmt.IndexVar != "" {
			env[stmt.IndexVar] = NumberValue(float64(idx))
		}
		if stop, err := loopControl(i.execBlock(stmt.Body)); stop || err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) toIndex(v Value, span ast.Span) (int, error) {
	if v.Kind != ValNumber {
		return 0, i.runtimeErr(span, "array index must be a number")
	}
	idx := int(v.Number)
	if v.Number != float64(idx) {
		return 0, i.runtimeErr(span, "array index must be an integer")
	}
	return idx, nil
}
