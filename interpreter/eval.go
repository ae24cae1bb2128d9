package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"yaj-editor/ast"
)

func (i *Interpreter) evalExpr(e ast.Expr) (Value, error) {
	switch expr := e.(type) {
	case *ast.StringLiteral:
		return StringValue(expr.Value), nil

	case *ast.NumberLiteral:
		n, err := strconv.ParseFloat(expr.Lexeme, 64)
		if err != nil {
			return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("invalid number %q", expr.Lexeme))
		}
		return NumberValue(n), nil

	case *ast.BoolLiteral:
		return BoolValue(expr.Value), nil

	case *ast.NullLiteral:
		return NullValue(), nil

	case *ast.ArrayLiteralExpr:
		els := make([]Value, 0, len(expr.Elements))
		for _, el := range expr.Elements {
			v, err := i.evalExpr(el)
			if err != nil {
				return Value{}, err
			}
			els = append(els, v)
		}
		return ArrayValue(els), nil

	case *ast.MapLiteralExpr:
		m := make(map[string]Value, len(expr.Entries))
		for _, ent := range expr.Entries {
			v, err := i.evalExpr(ent.Value)
			if err != nil {
				return Value{}, err
			}
			m[ent.Key] = v
		}
		return MapValue(m), nil

	case *ast.IndexExpr:
		return i.evalIndex(expr)

	case *ast.Identifier:
		if _, v, ok := i.findVarEnv(expr.Name); ok {
			return v, nil
		}
		return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("undefined variable %q", expr.Name))

	case *ast.CallExpr:
		return i.evalCall(expr)

	case *ast.UnaryExpr:
		right, err := i.evalExpr(expr.Right)
		if err != nil {
			return Value{}, err
		}
		switch {
		case expr.Op == "not" && right.Kind == ValBool:
			return BoolValue(!right.Bool), nil
		case expr.Op == "-" && right.Kind == ValNumber:
			return NumberValue(-right.Number), nil
		}
		return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("operator %q cannot be applied to %s", expr.Op, right.Kind))

	case *ast.BinaryExpr:
		if expr.Op == "and" || expr.Op == "or" {
			return i.evalLogical(expr)
		}
		left, err := i.evalExpr(expr.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := i.evalExpr(expr.Right)
		if err != nil {
			return Value{}, err
		}
		return i.evalBinary(expr, left, right)
	}

	span, _ := ast.SpanOf(e)
	return Value{}, i.runtimeErr(span, "unsupported expression")
}

func (i *Interpreter) evalIndex(expr *ast.IndexExpr) (Value, error) {
	left, err := i.evalExpr(expr.Left)
	if err != nil {
		return Value{}, err
	}
	iv, err := i.evalExpr(expr.Index)
	if err != nil {
		return Value{}, err
	}

	switch left.Kind {
	case ValArray:
		idx, err := i.toIndex(iv, expr.Index.GetSpan())
		if err != nil {
			return Value{}, err
		}
		if idx < 0 || idx >= len(left.Arr.Elems) {
			return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("array index out of bounds (index %d, size %d)", idx, len(left.Arr.Elems)))
		}
		return left.Arr.Elems[idx], nil

	case ValMap:
		if iv.Kind != ValString {
			return Value{}, i.runtimeErr(expr.Index.GetSpan(), "map key must be a string")
		}
		val, ok := left.Map.Elems[iv.Str]
		if !ok {
			return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("map key %q not found", iv.Str))
		}
		return val, nil

	case ValString:
		idx, err := i.toIndex(iv, expr.Index.GetSpan())
		if err != nil {
			return Value{}, err
		}
		rs := []rune(left.Str)
		if idx < 0 || idx >= len(rs) {
			return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("string index out of bounds (index %d, length %d)", idx, len(rs)))
		}
		return StringValue(string(rs[idx])), nil
	}
	return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("cannot index %s", left.Kind))
}

func (i *Interpreter) evalLogical(expr *ast.BinaryExpr) (Value, error) {
	left, err := i.evalCondition(expr.Left, fmt.Sprintf("operand of %q", expr.Op))
	if err != nil {
		return Value{}, err
	}
	if expr.Op == "and" && !left {
		return BoolValue(false), nil
	}
	if expr.Op == "or" && left {
		return BoolValue(true), nil
	}
	right, err := i.evalCondition(expr.Right, fmt.Sprintf("operand of %q", expr.Op))
	if err != nil {
		return Value{}, err
	}
	return BoolValue(right), nil
}

func (i *Interpreter) evalBinary(expr *ast.BinaryExpr, left, right Value) (Value, error) {
	op := expr.Op
	switch op {
	case "==":
		return BoolValue(valuesEqual(left, right)), nil
	case "!=":
		return BoolValue(!valuesEqual(left, right)), nil

	case "+":
		switch {
		case left.Kind == ValNumber && right.Kind == ValNumber:
			return NumberValue(left.Number + right.Number), nil
		case left.Kind == ValArray && right.Kind == ValArray:
			out := make([]Value, 0, len(left.Arr.Elems)+len(right.Arr.Elems))
			out = append(out, left.Arr.Elems...)
			out = append(out, right.Arr.Elems...)
			return ArrayValue(out), nil
		case left.Kind == ValString || right.Kind == ValString:
			return StringValue(left.ToString() + right.ToString()), nil
		}

	case "<", ">", "<=", ">=":
		if left.Kind == ValNumber && right.Kind == ValNumber {
			return BoolValue(compare(op, cmpFloat(left.Number, right.Number))), nil
		}
		if left.Kind == ValString && right.Kind == ValString {
			return BoolValue(compare(op, cmpString(left.Str, right.Str))), nil
		}
		return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("operator %q requires two numbers or two strings", op))

	case "-", "*", "/", "%":
		if left.Kind != ValNumber || right.Kind != ValNumber {
			break
		}
		a, b := left.Number, right.Number
		switch op {
		case "-":
			return NumberValue(a - b), nil
		case "*":
			return NumberValue(a * b), nil
		}
		if b == 0 {
			return Value{}, i.runtimeErr(expr.GetSpan(), "division by zero")
		}
		if op == "/" {
			return NumberValue(a / b), nil
		}
		return NumberValue(math.Mod(a, b)), nil
	}

	return Value{}, i.runtimeErr(expr.GetSpan(), fmt.Sprintf("operator %q cannot be applied to %s and %s", op, left.Kind, right.Kind))
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compare(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	default:
		return c >= 0
	}
}

func (i *Interpreter) evalCall(call *ast.CallExpr) (Value, error) {
	if fn, ok := i.funcs[call.Callee]; ok {
		return i.evalUserCall(fn, call)
	}

	args := make([]Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	b, ok := builtins[call.Callee]
	if !ok {
		return Value{}, i.runtimeErr(call.GetSpan(), fmt.Sprintf("undefined function %q", call.Callee))
	}
	v, err := b(i, args)
	if err != nil {
		return Value{}, i.runtimeErr(call.GetSpan(), fmt.Sprintf("%s(): %v", call.Callee, err))
	}
	return v, nil
}

const maxCallDepth = 512

func (i *Interpreter) evalUserCall(fn *ast.FunctionDecl, call *ast.CallExpr) (Value, error) {
	if len(call.Args) != len(fn.Params) {
		return Value{}, i.runtimeErr(call.GetSpan(), fmt.Sprintf("function %q expects %d args, got %d", fn.Name, len(fn.Params), len(call.Args)))
	}
	if len(i.callStack) >= maxCallDepth {
		return Value{}, i.runtimeErr(call.GetSpan(), fmt.Sprintf("call depth limit (%d) exceeded in %q", maxCallDepth, fn.Name))
	}

	argVals := make([]Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		argVals = append(argVals, v)
	}

	i.callStack = append(i.callStack, fn.Name)
	i.pushLocals()
	defer func() {
		i.popLocals()
		i.callStack = i.callStack[:len(i.callStack)-1]
	}()

	for idx, name := range fn.Params {
		i.currentEnv()[name] = argVals[idx]
	}

	err := i.execBlock(fn.Body)
	switch sig := err.(type) {
	case nil:
		return NullValue(), nil
	case returnSignal:
		return sig.val, nil
	case breakSignal:
		return Value{}, i.runtimeErr(sig.span, "break outside of a loop")
	case continueSignal:
		return Value{}, i.runtimeErr(sig.span, "continue outside of a loop")
	}
	return Value{}, err
}
