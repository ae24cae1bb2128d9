package main

import (
	"errors"
	"fmt"
	"os"

	"yaj-editor/editor"
	"yaj-editor/internal/config"
	"yaj-editor/internal/logger"
	"yaj-editor/interpreter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newCreator is the interpreter factory handed to the editor. filename, when
// set, names the source in runtime error locations.
func newCreator(cfg *config.Config, filename string) *editor.Creator {
	opts := []interpreter.Option{
		interpreter.WithMaxSteps(cfg.Run.MaxSteps),
		interpreter.WithLogger(logger.Default()),
	}
	if filename != "" {
		opts = append(opts, interpreter.WithFilename(filename))
	}
	return editor.NewCreator(opts...)
}

func newSession(cfg *config.Config, filename string) *editor.Session {
	return editor.NewSession(newCreator(cfg, filename),
		editor.WithTabWidth(cfg.Editor.TabWidth),
		editor.WithRunTimeout(cfg.RunTimeout()),
	)
}
