package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// defaultStdio returns the default terminal stdio (os.Stdin, os.Stdout, os.Stderr)
func defaultStdio() terminal.Stdio {
	return terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// PromptFile asks for a file path, completing names relative to startDir.
// A relative answer is resolved against startDir.
func PromptFile(label, startDir string) (string, error) {
	return PromptFileWithStdio(label, startDir, defaultStdio())
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(label string, defaultYes bool) (bool, error) {
	return PromptConfirmWithStdio(label, defaultYes, defaultStdio())
}

// PromptFileWithStdio is like PromptFile but with custom stdio for testing
func PromptFileWithStdio(label, startDir string, stdio terminal.Stdio) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: label,
		Help:    "Files are looked up relative to " + startDir,
		Suggest: func(toComplete string) []string {
			return completePath(startDir, toComplete)
		},
	}

	err := survey.AskOne(prompt, &value,
		survey.WithValidator(survey.Required),
		survey.WithStdio(stdio.In, stdio.Out, stdio.Err),
	)
	if err != nil {
		return "", err
	}
	return resolvePath(startDir, value), nil
}

// PromptConfirmWithStdio is like PromptConfirm but with custom stdio for testing
func PromptConfirmWithStdio(label string, defaultYes bool, stdio terminal.Stdio) (bool, error) {
	var value bool
	prompt := &survey.Confirm{
		Message: label,
		Default: defaultYes,
	}

	err := survey.AskOne(prompt, &value, survey.WithStdio(stdio.In, stdio.Out, stdio.Err))
	return value, err
}

func resolvePath(startDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(startDir, p)
}

// completePath lists entries matching the typed prefix. Directories get a
// trailing separator so completion can continue into them.
func completePath(startDir, toComplete string) []string {
	pattern := toComplete
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(startDir, pattern)
		if toComplete == "" || strings.HasSuffix(toComplete, string(filepath.Separator)) {
			pattern += string(filepath.Separator)
		}
	}

	matches, err := filepath.Glob(pattern + "*")
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel := m
		if !filepath.IsAbs(toComplete) {
			if r, err := filepath.Rel(startDir, m); err == nil {
				rel = r
			}
		}
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			rel += string(filepath.Separator)
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}
