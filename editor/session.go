package editor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"yaj-editor/internal/logger"
	"yaj-editor/interpreter"
)

// NoFileLabel is shown in place of a file name while no file is open.
const NoFileLabel = "No File Selected"

// Session is the state behind the editor window: the edit buffer, the file it
// came from, and the text of the output area. Every run and every tree dump
// builds a fresh interpreter from the Creator.
type Session struct {
	creator    *Creator
	tabWidth   int
	runTimeout time.Duration
	log        *logger.Logger

	text   string
	file   string
	output string
	last   *Interpreter
}

type SessionOption func(*Session)

// WithTabWidth sets how many spaces replace each tab before the source is
// handed to the interpreter.
func WithTabWidth(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.tabWidth = n
		}
	}
}

// WithRunTimeout bounds every Run. Zero leaves runs unbounded.
func WithRunTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.runTimeout = d }
}

func WithSessionLogger(l *logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func NewSession(creator *Creator, opts ...SessionOption) *Session {
	s := &Session{
		creator:  creator,
		tabWidth: 4,
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Text() string          { return s.text }
func (s *Session) SetText(text string)   { s.text = text }
func (s *Session) FileName() string      { return s.file }
func (s *Session) OutputText() string    { return s.output }
func (s *Session) HasFile() bool         { return s.file != "" }
func (s *Session) LastRun() *Interpreter { return s.last }

// Label is the file label: the open file's path, or NoFileLabel.
func (s *Session) Label() string {
	if s.file == "" {
		return NoFileLabel
	}
	return s.file
}

// Open loads path into the edit buffer. On failure the error text is shown in
// the output area and the buffer is left unchanged. An empty path is a
// cancelled selection and does nothing.
func (s *Session) Open(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.output = err.Error()
		s.log.WithField("file", path).Warn("open failed: %v", err)
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	s.text = string(data)
	s.file = path
	s.log.WithField("file", path).Info("opened %d bytes", len(data))
	return nil
}

// Save writes the buffer back to the open file. Without an open file it does
// nothing. Failures are shown in the output area.
func (s *Session) Save() error {
	if s.file == "" {
		return nil
	}
	if err := os.WriteFile(s.file, []byte(s.text), 0644); err != nil {
		s.output = err.Error()
		s.log.WithField("file", s.file).Warn("save failed: %v", err)
		return fmt.Errorf("failed to save %s: %w", s.file, err)
	}
	s.log.WithField("file", s.file).Info("saved %d bytes", len(s.text))
	return nil
}

// Close forgets the open file. The buffer is cleared only if a file was open,
// so scratch text typed without a file survives.
func (s *Session) Close() {
	if s.file != "" {
		s.text = ""
		s.log.WithField("file", s.file).Info("closed")
	}
	s.file = ""
}

// Run executes the buffer. The output area receives the combined report, or
// the abort error when the run was cancelled, timed out or crashed.
func (s *Session) Run(ctx context.Context) error {
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	in := s.creator.CreateInterpreter(s.source())
	s.last = in

	if err := in.Run(ctx); err != nil {
		s.output = err.Error()
		s.log.WithField("file", s.Label()).Warn("run aborted: %v", err)
		return err
	}
	s.output = in.CombinedOutput()
	return nil
}

// PrintAST lexes and parses the buffer and shows the syntax tree, or the
// syntax error, in the output area.
func (s *Session) PrintAST() error {
	in := s.creator.CreateInterpreter(s.source())

	toks, err := in.Lex()
	if err != nil {
		s.output = err.Error()
		return err
	}
	prog, err := in.Parse(toks)
	if err != nil {
		s.output = err.Error()
		return err
	}
	s.output = prog.String()
	return nil
}

// Tokens lexes the buffer without parsing it.
func (s *Session) Tokens() ([]string, error) {
	toks, err := s.creator.CreateInterpreter(s.source()).Lex()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.String())
	}
	return out, nil
}

func (s *Session) source() string {
	return strings.ReplaceAll(s.text, "\t", strings.Repeat(" ", s.tabWidth))
}

// Lines splits the buffer for line-oriented editing.
func (s *Session) Lines() []string {
	if s.text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s.text, "\n"), "\n")
}

// AppendLine adds one line to the end of the buffer.
func (s *Session) AppendLine(line string) {
	if s.text != "" && !strings.HasSuffix(s.text, "\n") {
		s.text += "\n"
	}
	s.text += line + "\n"
}

// DeleteLine removes the 1-based line n.
func (s *Session) DeleteLine(n int) error {
	lines := s.Lines()
	if n < 1 || n > len(lines) {
		return fmt.Errorf("line %d out of range (buffer has %d lines)", n, len(lines))
	}
	lines = append(lines[:n-1], lines[n:]...)
	s.text = ""
	if len(lines) > 0 {
		s.text = strings.Join(lines, "\n") + "\n"
	}
	return nil
}

// Reset empties the buffer and the output area. The open file stays open.
func (s *Session) Reset() {
	s.text = ""
	s.output = ""
	s.last = nil
}

// Globals returns the variables left by the last run, if any.
func (s *Session) Globals() map[string]interpreter.Value {
	if s.last == nil {
		return nil
	}
	return s.last.GlobalsSnapshot()
}
