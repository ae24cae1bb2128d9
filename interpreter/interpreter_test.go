package interpreter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	out    []string
	errs   []string
	events []string
}

func (r *recordSink) Out(line string) {
	r.out = append(r.out, line)
	r.events = append(r.events, "out:"+line)
}

func (r *recordSink) ErrorOut(line string) {
	r.errs = append(r.errs, line)
	r.events = append(r.events, "err:"+line)
}

func run(t *testing.T, src string, opts ...Option) *recordSink {
	t.Helper()
	sink := &recordSink{}
	require.NoError(t, New(src, sink, opts...).Run(context.Background()))
	return sink
}

func TestPrintValues(t *testing.T) {
	sink := run(t, `
print 1 + 2
print 7 / 2
print "a" + 1
print true
print null
print [1, "two", [3]]
print {"b": 2, "a": "x"}
print -3 % 2
`)
	assert.Equal(t, []string{
		"3",
		"3.5",
		"a1",
		"true",
		"null",
		`[1, "two", [3]]`,
		`{"a": "x", "b": 2}`,
		"-1",
	}, sink.out)
	assert.Empty(t, sink.errs)
}

func TestControlFlow(t *testing.T) {
	sink := run(t, `
total = 0
for i = 1 to 10
  if i % 2 == 0
    continue
  end
  if i > 7
    break
  end
  total = total + i
end
print total

n = 3
while n > 0
  n = n - 1
end
print n

for i = 3 to 1
  print i
end

for each x, idx in ["a", "b"]
  print str(idx) + x
end

for each k in {"z": 1, "y": 2}
  print k
end

x = 5
if x < 3
  print "small"
else if x < 10
  print "medium"
else
  print "large"
end
`)
	assert.Equal(t, []string{"16", "0", "3", "2", "1", "0a", "1b", "y", "z", "medium"}, sink.out)
	assert.Empty(t, sink.errs)
}

func TestFunctions(t *testing.T) {
	sink := run(t, `
function fib(n)
  if n < 2
    return n
  end
  return fib(n - 1) + fib(n - 2)
end

function noop()
end

print fib(10)
print noop()
`)
	assert.Equal(t, []string{"55", "null"}, sink.out)
}

func TestFunctionLocalsDoNotLeak(t *testing.T) {
	sink := run(t, `
x = "global"
function f()
  x = "local"
  return x
end
print f()
print x
`)
	assert.Equal(t, []string{"local", "global"}, sink.out)
}

func TestArraysAreReferences(t *testing.T) {
	sink := run(t, `
a = [1, 2]
b = a
push(b, 3)
a[0] = 9
print a
print len(b)
print pop(a)
m = {}
m["k"] = 1
print keys(m)
`)
	assert.Equal(t, []string{"[9, 2, 3]", "3", "3", `["k"]`}, sink.out)
}

func TestBuiltins(t *testing.T) {
	sink := run(t, `
print upper("abc")
print trim("  x ")
print join(split("a,b,c", ","), "-")
print contains([1, 2], 2)
print contains("hello", "ell")
print substr("héllo", 1, 3)
print num("4.5") * 2
print type({})
print "abc"[1]
`)
	assert.Equal(t, []string{"ABC", "x", "a-b-c", "true", "true", "éll", "9", "map", "b"}, sink.out)
}

func TestErrorBuiltinContinues(t *testing.T) {
	sink := run(t, `
error("bad")
print "partial"
`)
	assert.Equal(t, []string{"err:bad", "out:partial"}, sink.events)
}

func TestSyntaxErrorGoesToErrorOut(t *testing.T) {
	sink := run(t, "print (1 + \n")
	assert.Empty(t, sink.out)
	require.Len(t, sink.errs, 1)
	assert.True(t, strings.HasPrefix(sink.errs[0], "Syntax error at 1:"), sink.errs[0])
}

func TestLexErrorGoesToErrorOut(t *testing.T) {
	sink := run(t, "print \"open")
	require.Len(t, sink.errs, 1)
	assert.Equal(t, "Syntax error at 1:7: Unterminated string", sink.errs[0])
}

func TestRuntimeErrorFormat(t *testing.T) {
	sink := run(t, "print \"before\"\nfunction f()\n  return 1 / 0\nend\nprint f()\n", WithFilename("main.yaj"))

	assert.Equal(t, []string{"before"}, sink.out)
	require.Len(t, sink.errs, 1)
	assert.Equal(t, strings.Join([]string{
		"Runtime error at main.yaj:3:12",
		"  division by zero",
		"  3 |   return 1 / 0",
		strings.Repeat(" ", 17) + "^",
		"Stack:",
		"  at f()",
	}, "\n"), sink.errs[0])
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"undefined variable", "print y", `undefined variable "y"`},
		{"undefined function", "nope()", `undefined function "nope"`},
		{"bad condition", "if 1\nend", "if condition must be a bool, got number"},
		{"bad operands", "print [1] - 1", `operator "-" cannot be applied to array and number`},
		{"index out of bounds", "a = [1]\nprint a[3]", "array index out of bounds (index 3, size 1)"},
		{"missing key", "m = {}\nprint m[\"x\"]", `map key "x" not found`},
		{"top-level return", "return 1", "return is only valid inside a function"},
		{"break outside loop", "break", "break outside of a loop"},
		{"arity", "function f(a)\nend\nf()", `function "f" expects 1 args, got 0`},
		{"builtin error", "len(1)", "len(): expects a string, array or map, got number"},
		{"recursion depth", "function f()\n  return f()\nend\nf()", "call depth limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := run(t, tc.src)
			require.Len(t, sink.errs, 1)
			assert.Contains(t, sink.errs[0], tc.want)
			assert.True(t, strings.HasPrefix(sink.errs[0], "Runtime error at line "), sink.errs[0])
		})
	}
}

func TestStepLimitAbortsRun(t *testing.T) {
	sink := &recordSink{}
	err := New("while true\nend", sink, WithMaxSteps(100)).Run(context.Background())
	require.ErrorIs(t, err, ErrStepLimit)
	assert.Empty(t, sink.errs)
}

func TestCancelledContextAbortsRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	sink := &recordSink{}
	err := New("x = 0\nwhile true\n  x = x + 1\nend", sink).Run(ctx)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestLexAndParseExposed(t *testing.T) {
	in := New("print 1\n", &recordSink{})
	toks, err := in.Lex()
	require.NoError(t, err)
	require.NotEmpty(t, toks)

	prog, err := in.Parse(toks)
	require.NoError(t, err)
	assert.Equal(t, "Program\n  Print(Number(1))\n", prog.String())
}

func TestInspection(t *testing.T) {
	in := New("a = 1\nfunction g()\nend\nfunction f()\nend\n", &recordSink{})
	require.NoError(t, in.Run(context.Background()))

	globs := in.GlobalsSnapshot()
	assert.Equal(t, NumberValue(1), globs["a"])
	assert.Equal(t, []string{"f", "g"}, in.FuncNames())
	assert.Equal(t, 3, in.Steps())
}

func TestEmptySource(t *testing.T) {
	sink := run(t, "")
	assert.Empty(t, sink.out)
	assert.Empty(t, sink.errs)
}
