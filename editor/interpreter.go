// Package editor is the front end of the Yaj editor: a factory for
// output-capturing interpreters and a widget-free editing session.
package editor

import (
	"strings"
	"sync"

	"yaj-editor/interpreter"
)

const divider = "================"

// Interpreter runs a Yaj program and keeps everything it printed. It is the
// engine's Sink: normal output and error output land in separate buffers.
type Interpreter struct {
	*interpreter.Interpreter

	mu     sync.Mutex
	out    strings.Builder
	errOut strings.Builder
}

// Creator builds interpreters for the editor. Every interpreter it creates
// shares the same engine options and nothing else.
type Creator struct {
	opts []interpreter.Option
}

func NewCreator(opts ...interpreter.Option) *Creator {
	return &Creator{opts: opts}
}

// CreateInterpreter returns a fresh interpreter bound to source. Any source is
// accepted, including an empty one.
func (c *Creator) CreateInterpreter(source string) *Interpreter {
	return newInterpreter(source, c.opts...)
}

func newInterpreter(source string, opts ...interpreter.Option) *Interpreter {
	in := &Interpreter{}
	in.Interpreter = interpreter.New(source, in, opts...)
	return in
}

func (in *Interpreter) Out(line string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.out.WriteString(line)
	in.out.WriteByte('\n')
}

func (in *Interpreter) ErrorOut(line string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.errOut.WriteString(line)
	in.errOut.WriteByte('\n')
}

// Output is everything written through Out, one line per call.
func (in *Interpreter) Output() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.out.String()
}

// Errors is everything written through ErrorOut, one line per call.
func (in *Interpreter) Errors() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.errOut.String()
}

// CombinedOutput formats the report shown after a run. The errors section is
// only included when the error text is longer than one character.
func (in *Interpreter) CombinedOutput() string {
	out, errs := in.Output(), in.Errors()
	if len(errs) <= 1 {
		return "Output:\n" + out
	}
	return "Errors: \n" + errs + "\n" + divider + "\n Output:\n" + out
}

var _ interpreter.Sink = (*Interpreter)(nil)
