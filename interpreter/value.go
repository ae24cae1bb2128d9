package interpreter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValNull ValueKind = iota
	ValNumber
	ValString
	ValBool
	ValArray
	ValMap
)

func (k ValueKind) String() string {
	switch k {
	case ValNumber:
		return "number"
	case ValString:
		return "string"
	case ValBool:
		return "bool"
	case ValArray:
		return "array"
	case ValMap:
		return "map"
	default:
		return "null"
	}
}

// ArrayObject gives arrays reference semantics.
type ArrayObject struct {
	Elems []Value
}

// MapObject gives maps reference semantics.
type MapObject struct {
	Elems map[string]Value
}

type Value struct {
	Kind   ValueKind
	Number float64
	Str    string
	Bool   bool
	Arr    *ArrayObject
	Map    *MapObject
}

func NullValue() Value            { return Value{Kind: ValNull} }
func NumberValue(n float64) Value { return Value{Kind: ValNumber, Number: n} }
func StringValue(s string) Value  { return Value{Kind: ValString, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: ValBool, Bool: b} }
func ArrayValue(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: ValArray, Arr: &ArrayObject{Elems: elems}}
}
func MapValue(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: ValMap, Map: &MapObject{Elems: m}}
}

func (v Value) sortedKeys() []string {
	if v.Kind != ValMap || v.Map == nil {
		return nil
	}
	keys := make([]string, 0, len(v.Map.Elems))
	for k := range v.Map.Elems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToString is the text print writes for v.
func (v Value) ToString() string {
	switch v.Kind {
	case ValNumber:
		return formatNumber(v.Number)

	case ValString:
		return v.Str

	case ValBool:
		return strconv.FormatBool(v.Bool)

	case ValArray:
		var b strings.Builder
		b.WriteString("[")
		for idx, el := range v.Arr.Elems {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.WriteString(el.inspect())
		}
		b.WriteString("]")
		return b.String()

	case ValMap:
		var b strings.Builder
		b.WriteString("{")
		for idx, k := range v.sortedKeys() {
			if idx > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q: %s", k, v.Map.Elems[k].inspect())
		}
		b.WriteString("}")
		return b.String()

	default:
		return "null"
	}
}

// inspect quotes strings nested inside containers.
func (v Value) inspect() string {
	if v.Kind == ValString {
		return strconv.Quote(v.Str)
	}
	return v.ToString()
}

func (v Value) String() string { return v.inspect() }

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNull:
		return true
	case ValNumber:
		return a.Number == b.Number
	case ValString:
		return a.Str == b.Str
	case ValBool:
		return a.Bool == b.Bool
	case ValArray:
		if len(a.Arr.Elems) != len(b.Arr.Elems) {
			return false
		}
		for idx := range a.Arr.Elems {
			if !valuesEqual(a.Arr.Elems[idx], b.Arr.Elems[idx]) {
				return false
			}
		}
		return true
	case ValMap:
		if len(a.Map.Elems) != len(b.Map.Elems) {
			return false
		}
		for k, av := range a.Map.Elems {
			bv, ok := b.Map.Elems[k]
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
