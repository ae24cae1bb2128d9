package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yaj-editor/ast"
	"yaj-editor/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.New(src).Tokens()
	require.NoError(t, err)
	return New(toks).ParseProgram()
}

func TestParseTree(t *testing.T) {
	prog, err := parse(t, `x = 5
if x < 3
  print "small"
else if x < 10
  print "medium"
end
function add(a, b)
  return a + b * 2
end
for each v, i in [1, 2]
  push(out, v)
end
m["k"] = {"a": null}
`)
	require.NoError(t, err)

	want := `Program
  Assign(x = Number(5))
  If(Binary(Ident(x) < Number(3)))
    then:
      Print(String("small"))
    else:
      If(Binary(Ident(x) < Number(10)))
        then:
          Print(String("medium"))
  Function(add, params=[a b])
    Return(Binary(Ident(a) + Binary(Ident(b) * Number(2))))
  ForEach(v, i in Array([Number(1), Number(2)]))
    Expr(Call(push, Ident(out), Ident(v)))
  IndexAssign(m[String("k")] = Map({"a": Null}))
`
	assert.Equal(t, want, prog.String())
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1 - 2 - 3", "Print(Binary(Binary(Number(1) - Number(2)) - Number(3)))"},
		{"print not a and b or c", "Print(Binary(Binary(Unary(not Ident(a)) and Ident(b)) or Ident(c)))"},
		{"print -x % 2 == 0", "Print(Binary(Binary(Unary(- Ident(x)) % Number(2)) == Number(0)))"},
		{"print (1 + 2) * 3", "Print(Binary(Binary(Number(1) + Number(2)) * Number(3)))"},
		{"print a[0][1]", "Print(Index(Index(Ident(a), Number(0)), Number(1)))"},
		{"print f()", "Print(Call(f))"},
		{"print []", "Print(Array([]))"},
		{"print {}", "Print(Map({}))"},
		{"print true != false", "Print(Binary(Bool(true) != Bool(false)))"},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			prog, err := parse(t, tc.src)
			require.NoError(t, err)
			require.Len(t, prog.Stmts, 1)
			assert.Equal(t, tc.want, prog.Stmts[0].String())
		})
	}
}

func TestParseLoops(t *testing.T) {
	prog, err := parse(t, "for i = 10 to 0 step -2\n  if i == 4\n    break\n  end\n  continue\nend\nwhile false\nend\nreturn\n")
	require.NoError(t, err)

	assert.Equal(t, `Program
  For(i = Number(10) to Number(0) step Unary(- Number(2)))
    If(Binary(Ident(i) == Number(4)))
      then:
        Break
    Continue
  While(Bool(false))
  Return
`, prog.String())
}

func TestCommentsAndBlankLines(t *testing.T) {
	prog, err := parse(t, "# header\n\n\nprint 1 # trailing\n\n")
	require.NoError(t, err)
	assert.Len(t, prog.Stmts, 1)
}

func TestSpans(t *testing.T) {
	prog, err := parse(t, "\n  x = 1 / y\n")
	require.NoError(t, err)

	assign := prog.Stmts[0].(*ast.AssignStmt)
	assert.Equal(t, ast.Span{Line: 2, Col: 3}, assign.GetSpan())
	assert.Equal(t, ast.Span{Line: 2, Col: 9}, assign.Value.GetSpan())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"trailing token", "print 1 2", "Syntax error at 1:9: Unexpected token after statement (got NUMBER 2)"},
		{"missing end", "if x\nprint 1\n", "Syntax error: Expected 'end' to close if at end of file"},
		{"missing expression", "x = ", "Syntax error: Expected an expression at end of file"},
		{"bare expression", "5", "Syntax error at 1:1: Expected a statement (got NUMBER 5)"},
		{"duplicate param", "function f(a, a)\nend", `Syntax error at 1:15: Duplicate parameter "a" (got IDENT a)`},
		{"non-string map key", "print {1: 2}", "Syntax error at 1:8: Expected string key in map literal (got NUMBER 1)"},
		{"header on same line", "while true print 1\nend", "Syntax error at 1:12: Expected end of line after while header (got PRINT)"},
		{"unclosed call", "f(1\n", "Syntax error at 1:4: Expected ',' or closing bracket in call arguments (got end of line)"},
		{"stray end", "end", "Syntax error at 1:1: Expected a statement (got END)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.src)
			require.Error(t, err)
			var se *lexer.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestParserToleratesMissingEOF(t *testing.T) {
	toks := []lexer.Token{
		{Type: lexer.PRINT, Lexeme: "print", Line: 1, Col: 1},
		{Type: lexer.NUMBER, Lexeme: "1", Line: 1, Col: 7},
	}
	prog, err := New(toks).ParseProgram()
	require.NoError(t, err)
	assert.Equal(t, "Program\n  Print(Number(1))\n", prog.String())
}
