// Package output renders styled terminal messages for the CLI.
//
// Logging goes to stderr through internal/logger. This package is for the
// human-facing lines on stdout: what was generated and what failed.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all messages. A nil writer restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetVerbose enables or disables Verbose messages.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a completed operation.
//
// Example:
//
//	output.Success("orders.raml: xsd, jsonschema")
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("✔ "+msg))
}

// Error prints a failure that needs attention.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("✘ "+msg))
}

// Info prints a status update.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("• "+msg))
}

// Step prints an indented sub-item, e.g. a written artifact.
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Verbose prints msg only in verbose mode.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("… "+msg))
	}
}
