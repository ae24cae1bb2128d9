package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"yaj-editor/editor"
	"yaj-editor/internal/config"
	"yaj-editor/internal/ui"
)

var shellCommands = []string{
	":run", ":ast", ":tokens", ":open", ":save", ":close", ":list",
	":reset", ":del", ":vars", ":funcs", ":pwd", ":cd", ":clear", ":help", ":quit",
}

// shell is the line-oriented editor. Typed lines go to the edit buffer,
// lines starting with ':' are commands.
type shell struct {
	cfg     *config.Config
	session *editor.Session
	out     io.Writer
	styled  bool
	depth   int

	// askFile asks for a path when :open has no argument.
	askFile func() (string, error)
}

func newShell(cfg *config.Config, session *editor.Session, out io.Writer) *shell {
	return &shell{
		cfg:     cfg,
		session: session,
		out:     out,
		styled:  cfg.Output.Color,
		askFile: func() (string, error) {
			return ui.PromptFile("Open file:", cfg.StartDir())
		},
	}
}

func (a *app) runShell(ctx context.Context, out io.Writer, file string) error {
	sh := newShell(a.cfg, newSession(a.cfg, ""), out)
	if file != "" {
		if err := sh.session.Open(file); err != nil {
			fmt.Fprintln(out, ui.Error(err.Error()))
		}
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(shellCommands))
	for _, c := range shellCommands {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            a.cfg.Editor.Prompt,
		HistoryFile:       a.cfg.HistoryPath(),
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            out,
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer rl.Close()
	sh.out = rl.Stdout()

	sh.banner()
	sh.depth = blockDepth(sh.session.Lines())

	for {
		rl.SetPrompt(sh.prompt())

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return err
		}

		if sh.handle(ctx, line) {
			return nil
		}
	}
}

func (sh *shell) banner() {
	fmt.Fprintln(sh.out, ui.Header("Yaj editor")+"  "+ui.Dim(":help for commands, :quit to exit"))
	fmt.Fprintln(sh.out, ui.FileLabel(sh.session.Label()))
	fmt.Fprintln(sh.out)
}

func (sh *shell) prompt() string {
	if sh.depth > 0 {
		return strings.Repeat(".", len(strings.TrimRight(sh.cfg.Editor.Prompt, " "))) + " "
	}
	return sh.cfg.Editor.Prompt
}

// handle processes one input line and reports whether the shell should exit.
func (sh *shell) handle(ctx context.Context, line string) bool {
	trim := strings.TrimSpace(line)
	if !strings.HasPrefix(trim, ":") {
		sh.session.AppendLine(line)
		sh.depth = updateDepth(sh.depth, trim)
		return false
	}

	cmd, arg, _ := strings.Cut(trim, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":q", ":quit", ":exit":
		return true

	case ":h", ":help":
		sh.help()

	case ":run":
		runCtx, stop := interruptible(ctx)
		err := sh.session.Run(runCtx)
		stop()
		if err != nil {
			fmt.Fprintln(sh.out, ui.Error(sh.session.OutputText()))
			return false
		}
		printReport(sh.out, sh.session, sh.styled)

	case ":ast":
		if err := sh.session.PrintAST(); err != nil {
			fmt.Fprintln(sh.out, ui.Error(err.Error()))
			return false
		}
		fmt.Fprint(sh.out, sh.session.OutputText())

	case ":tokens":
		toks, err := sh.session.Tokens()
		if err != nil {
			fmt.Fprintln(sh.out, ui.Error(err.Error()))
			return false
		}
		fmt.Fprintln(sh.out, strings.Join(toks, "\n"))

	case ":open":
		path := arg
		if path == "" {
			p, err := sh.askFile()
			if err != nil {
				fmt.Fprintln(sh.out, ui.Dim("(open cancelled)"))
				return false
			}
			path = p
		}
		if err := sh.session.Open(path); err != nil {
			fmt.Fprintln(sh.out, ui.Error(sh.session.OutputText()))
			return false
		}
		sh.depth = blockDepth(sh.session.Lines())
		fmt.Fprintln(sh.out, ui.FileLabel(sh.session.Label()))

	case ":save":
		if !sh.session.HasFile() {
			fmt.Fprintln(sh.out, ui.Dim("(no file open, nothing saved)"))
			return false
		}
		if err := sh.session.Save(); err != nil {
			fmt.Fprintln(sh.out, ui.Error(sh.session.OutputText()))
			return false
		}
		fmt.Fprintln(sh.out, ui.Success("saved "+sh.session.FileName()))

	case ":close":
		sh.session.Close()
		sh.depth = blockDepth(sh.session.Lines())
		fmt.Fprintln(sh.out, ui.FileLabel(sh.session.Label()))

	case ":list":
		fmt.Fprintln(sh.out, ui.FileLabel(sh.session.Label()))
		fmt.Fprint(sh.out, ui.Listing(sh.session.Lines()))

	case ":reset":
		sh.session.Reset()
		sh.depth = 0
		fmt.Fprintln(sh.out, ui.Dim("(buffer cleared)"))

	case ":del":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(sh.out, ui.Error("usage: :del <line>"))
			return false
		}
		if err := sh.session.DeleteLine(n); err != nil {
			fmt.Fprintln(sh.out, ui.Error(err.Error()))
			return false
		}
		sh.depth = blockDepth(sh.session.Lines())

	case ":vars":
		globs := sh.session.Globals()
		if len(globs) == 0 {
			fmt.Fprintln(sh.out, ui.Dim("(no globals)"))
			return false
		}
		keys := make([]string, 0, len(globs))
		for k := range globs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sh.out, "%s = %v\n", k, globs[k])
		}

	case ":funcs":
		var names []string
		if in := sh.session.LastRun(); in != nil {
			names = in.FuncNames()
		}
		if len(names) == 0 {
			fmt.Fprintln(sh.out, ui.Dim("(no user functions)"))
			return false
		}
		fmt.Fprintln(sh.out, strings.Join(names, "\n"))

	case ":pwd":
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(sh.out, ui.Error(err.Error()))
			return false
		}
		fmt.Fprintln(sh.out, cwd)

	case ":cd":
		if arg == "" {
			fmt.Fprintln(sh.out, ui.Error("usage: :cd <dir>"))
			return false
		}
		if err := os.Chdir(arg); err != nil {
			fmt.Fprintln(sh.out, ui.Error(err.Error()))
		}

	case ":clear":
		fmt.Fprint(sh.out, "\033[2J\033[H")

	default:
		fmt.Fprintln(sh.out, ui.Error("unknown command "+cmd+", try :help"))
	}
	return false
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, `Lines you type are appended to the buffer. Commands:
  :run               Run the buffer with a fresh interpreter
  :ast               Print the syntax tree of the buffer
  :tokens            Print the token stream of the buffer
  :open [path]       Load a file (asks for a path when omitted)
  :save              Write the buffer to the open file
  :close             Close the file (clears the buffer if a file was open)
  :list              Show the buffer with line numbers
  :del <n>           Delete line n
  :reset             Clear the buffer and the output
  :vars              Show globals left by the last run
  :funcs             Show functions defined by the last run
  :pwd               Print current directory
  :cd <dir>          Change directory
  :clear             Clear the screen
  :quit              Exit the editor`)
}

// blockDepth replays updateDepth over the buffer.
func blockDepth(lines []string) int {
	depth := 0
	for _, l := range lines {
		depth = updateDepth(depth, strings.TrimSpace(l))
	}
	return depth
}

// updateDepth tracks open blocks so the prompt can show a continuation marker.
func updateDepth(depth int, trimmed string) int {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return depth
	}
	if isBlockOpener(trimmed) {
		return depth + 1
	}
	if trimmed == "end" && depth > 0 {
		return depth - 1
	}
	return depth
}

func isBlockOpener(s string) bool {
	return strings.HasPrefix(s, "if ") ||
		strings.HasPrefix(s, "while ") ||
		strings.HasPrefix(s, "for ") ||
		strings.HasPrefix(s, "function ")
}
