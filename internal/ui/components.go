package ui

import (
	"fmt"
	"strings"
)

// Header renders a section title
func Header(title string) string {
	return StyleHeader.Render(title)
}

// Success renders a confirmation message
func Success(message string) string {
	return StyleSuccess.Render("✓ " + message)
}

// Error renders an error message
func Error(message string) string {
	return StyleError.Render("✗ " + message)
}

// Dim renders secondary text such as hints
func Dim(message string) string {
	return StyleDim.Render(message)
}

// FileLabel renders the current file label of the editor
func FileLabel(label string) string {
	return StyleLabel.Render("[" + label + "]")
}

// RenderReport is the styled form of a run report. The errors box is shown
// under the same rule as the plain report: only when the error text is longer
// than one character.
func RenderReport(errors, output string) string {
	var b strings.Builder

	if len(errors) > 1 {
		b.WriteString(ErrorBoxStyle.Render(StyleError.Render("Errors") + "\n\n" + strings.TrimRight(errors, "\n")))
		b.WriteString("\n")
	}

	body := strings.TrimRight(output, "\n")
	if body == "" {
		body = StyleDim.Render("(no output)")
	}
	b.WriteString(OutputBoxStyle.Render(StyleLabel.Render("Output") + "\n\n" + body))
	b.WriteString("\n")

	return b.String()
}

// Listing renders buffer lines with 1-based line numbers
func Listing(lines []string) string {
	if len(lines) == 0 {
		return Dim("(empty buffer)") + "\n"
	}
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%s  %s\n", StyleLineNo.Render(fmt.Sprintf("%d", i+1)), line)
	}
	return b.String()
}
