package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yaj-editor/internal/config"
	"yaj-editor/internal/ui"
)

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or manage configuration",
		Long: `View and manage the editor configuration.

Examples:
  yaj config show                  # Display current configuration
  yaj config init                  # Write ./yaj.yaml with the defaults
  yaj --config my.yaml config init # Write the defaults elsewhere`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header("Current configuration"))
			fmt.Fprintln(out)
			fmt.Fprint(out, string(data))
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Dim("Source: "+a.configSource()))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		// the target file may not exist yet, so it is not loaded first
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.FileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				if !readline.IsTerminal(int(os.Stdin.Fd())) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				ok, err := ui.PromptConfirm(path+" already exists. Overwrite?", false)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}

func (a *app) configSource() string {
	path := a.configPath
	if path == "" {
		path = config.FileName
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "defaults (no " + path + " found)"
	}
	return path
}
