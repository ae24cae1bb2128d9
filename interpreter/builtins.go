package interpreter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type builtinFunc func(i *Interpreter, args []Value) (Value, error)

var builtins = map[string]builtinFunc{
	"str":      builtinStr,
	"num":      builtinNum,
	"len":      builtinLen,
	"type":     builtinType,
	"upper":    stringFunc(strings.ToUpper),
	"lower":    stringFunc(strings.ToLower),
	"trim":     stringFunc(strings.TrimSpace),
	"split":    builtinSplit,
	"join":     builtinJoin,
	"contains": builtinContains,
	"substr":   builtinSubstr,
	"push":     builtinPush,
	"pop":      builtinPop,
	"keys":     builtinKeys,
	"error":    builtinError,
}

// BuiltinNames lists the functions every program can call.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	return names
}

func arity(args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("expects %d arg(s), got %d", n, len(args))
	}
	return nil
}

func argKind(args []Value, idx int, kind ValueKind) error {
	if args[idx].Kind != kind {
		return fmt.Errorf("arg %d must be a %s, got %s", idx+1, kind, args[idx].Kind)
	}
	return nil
}

func builtinStr(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	return StringValue(args[0].ToString()), nil
}

func builtinNum(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	if args[0].Kind == ValNumber {
		return args[0], nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(args[0].ToString()), 64)
	if err != nil {
		return Value{}, fmt.Errorf("could not parse %q", args[0].ToString())
	}
	return NumberValue(n), nil
}

func builtinLen(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	switch v := args[0]; v.Kind {
	case ValString:
		return NumberValue(float64(utf8.RuneCountInString(v.Str))), nil
	case ValArray:
		return NumberValue(float64(len(v.Arr.Elems))), nil
	case ValMap:
		return NumberValue(float64(len(v.Map.Elems))), nil
	default:
		return Value{}, fmt.Errorf("expects a string, array or map, got %s", v.Kind)
	}
}

func builtinType(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	return StringValue(args[0].Kind.String()), nil
}

func stringFunc(fn func(string) string) builtinFunc {
	return func(_ *Interpreter, args []Value) (Value, error) {
		if err := arity(args, 1); err != nil {
			return Value{}, err
		}
		if err := argKind(args, 0, ValString); err != nil {
			return Value{}, err
		}
		return StringValue(fn(args[0].Str)), nil
	}
}

func builtinSplit(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 2); err != nil {
		return Value{}, err
	}
	for idx := range args {
		if err := argKind(args, idx, ValString); err != nil {
			return Value{}, err
		}
	}
	parts := strings.Split(args[0].Str, args[1].Str)
	out := make([]Value, 0, len(parts))
	for _, p := range parts {
		out = append(out, StringValue(p))
	}
	return ArrayValue(out), nil
}

func builtinJoin(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 2); err != nil {
		return Value{}, err
	}
	if err := argKind(args, 0, ValArray); err != nil {
		return Value{}, err
	}
	if err := argKind(args, 1, ValString); err != nil {
		return Value{}, err
	}
	ss := make([]string, 0, len(args[0].Arr.Elems))
	for _, v := range args[0].Arr.Elems {
		ss = append(ss, v.ToString())
	}
	return StringValue(strings.Join(ss, args[1].Str)), nil
}

func builtinContains(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 2); err != nil {
		return Value{}, err
	}
	switch c := args[0]; c.Kind {
	case ValString:
		if err := argKind(args, 1, ValString); err != nil {
			return Value{}, err
		}
		return BoolValue(strings.Contains(c.Str, args[1].Str)), nil
	case ValArray:
		for _, el := range c.Arr.Elems {
			if valuesEqual(el, args[1]) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	case ValMap:
		if err := argKind(args, 1, ValString); err != nil {
			return Value{}, err
		}
		_, ok := c.Map.Elems[args[1].Str]
		return BoolValue(ok), nil
	default:
		return Value{}, fmt.Errorf("expects a string, array or map, got %s", c.Kind)
	}
}

// substr(s, start [, length]) counts in runes; length is clamped to the end.
func builtinSubstr(_ *Interpreter, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Value{}, fmt.Errorf("expects 2 or 3 args, got %d", len(args))
	}
	if err := argKind(args, 0, ValString); err != nil {
		return Value{}, err
	}
	for idx := 1; idx < len(args); idx++ {
		if err := argKind(args, idx, ValNumber); err != nil {
			return Value{}, err
		}
		if args[idx].Number != float64(int(args[idx].Number)) || args[idx].Number < 0 {
			return Value{}, fmt.Errorf("arg %d must be a non-negative integer", idx+1)
		}
	}

	rs := []rune(args[0].Str)
	start := int(args[1].Number)
	if start > len(rs) {
		return Value{}, fmt.Errorf("start %d out of range (length %d)", start, len(rs))
	}
	end := len(rs)
	if len(args) == 3 && start+int(args[2].Number) < end {
		end = start + int(args[2].Number)
	}
	return StringValue(string(rs[start:end])), nil
}

func builtinPush(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 2 {
		return Value{}, errors.New("expects an array and at least one value")
	}
	if err := argKind(args, 0, ValArray); err != nil {
		return Value{}, err
	}
	args[0].Arr.Elems = append(args[0].Arr.Elems, args[1:]...)
	return NumberValue(float64(len(args[0].Arr.Elems))), nil
}

func builtinPop(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	if err := argKind(args, 0, ValArray); err != nil {
		return Value{}, err
	}
	elems := args[0].Arr.Elems
	if len(elems) == 0 {
		return Value{}, errors.New("empty array")
	}
	last := elems[len(elems)-1]
	args[0].Arr.Elems = elems[:len(elems)-1]
	return last, nil
}

func builtinKeys(_ *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	if err := argKind(args, 0, ValMap); err != nil {
		return Value{}, err
	}
	keys := args[0].sortedKeys()
	out := make([]Value, 0, len(keys))
	for _, k := range keys {
		out = append(out, StringValue(k))
	}
	return ArrayValue(out), nil
}

// error(msg) reports msg on the error channel and lets the program continue.
func builtinError(i *Interpreter, args []Value) (Value, error) {
	if err := arity(args, 1); err != nil {
		return Value{}, err
	}
	i.sink.ErrorOut(args[0].ToString())
	return NullValue(), nil
}
