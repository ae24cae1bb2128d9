package main

import (
	"errors"

	"github.com/spf13/cobra"

	"yaj-editor/internal/config"
)

// errReported makes the process exit 1 after the program's own errors were
// already printed.
var errReported = errors.New("errors reported")

type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "yaj",
		Short: "Editor and runner for Yaj scripts",
		Long: `yaj - edit, run and inspect Yaj scripts.

Without a subcommand the interactive editor starts.

Commands:
  edit [file]      Open the editor, optionally loading a file
  run <file>       Run a script and print its report
  ast <file>       Print the syntax tree of a script
  tokens <file>    Print the token stream of a script
  config show      Display the current configuration
  config init      Write a default yaj.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context(), cmd.OutOrStdout(), "")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+")")

	root.AddCommand(
		a.newEditCmd(),
		a.newRunCmd(),
		a.newASTCmd(),
		a.newTokensCmd(),
		a.newConfigCmd(),
	)
	return root
}

// loadConfig reads --config strictly; the implicit ./yaj.yaml falls back to
// defaults when missing or invalid.
func (a *app) loadConfig() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.LoadOrDefault("")
	}
	a.cfg.ApplyLogging()
	return nil
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return a.runShell(cmd.Context(), cmd.OutOrStdout(), file)
		},
	}
}
