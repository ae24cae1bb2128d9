package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yaj-editor/editor"
	"yaj-editor/internal/ui"
)

func (a *app) newRunCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a script and print its report",
		Long: `Run a script with a fresh interpreter and print the combined report.

The process exits with status 1 when the script reported errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(args[0])
			if err != nil {
				return err
			}

			ctx, stop := interruptible(cmd.Context())
			defer stop()
			if err := s.Run(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printReport(out, s, a.styled(plain))
			if s.LastRun().Errors() != "" {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the unstyled report")
	return cmd
}

func (a *app) newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			if err := s.PrintAST(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s.OutputText())
			return nil
		},
	}
}

func (a *app) newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			toks, err := s.Tokens()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(toks, "\n"))
			return nil
		},
	}
}

func (a *app) openSession(path string) (*editor.Session, error) {
	s := newSession(a.cfg, filepath.Base(path))
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *app) styled(plain bool) bool {
	return a.cfg.Output.Color && !plain
}

// printReport writes the last run's report: the combined text as is, or the
// boxed rendering when styled.
func printReport(w io.Writer, s *editor.Session, styled bool) {
	in := s.LastRun()
	if !styled || in == nil {
		fmt.Fprint(w, s.OutputText())
		return
	}
	fmt.Fprint(w, ui.RenderReport(in.Errors(), in.Output()))
}

// interruptible scopes Ctrl+C to a single run.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
