package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// Progress prints a one-line per-server counter during a collection loop,
// overwriting itself until the last server is done.
func Progress(i, n int, server string) {
	fmt.Printf("\r\033[2K  %s %s", dimStyle.Render(fmt.Sprintf("[%d/%d]", i, n)), server)
	if i == n {
		fmt.Println()
	}
}

// StageDone prints a styled status when a pipeline stage finishes.
func StageDone(name, detail string) {
	msg := successStyle.Render("  OK ") + " " + name
	if detail != "" {
		msg += " " + dimStyle.Render(detail)
	}
	fmt.Println(msg)
}

// StageSkipped prints a styled status for a stage with nothing to collect.
func StageSkipped(name, reason string) {
	msg := name + " skipped"
	if reason != "" {
		msg += ", " + reason
	}
	fmt.Printf("  %s %s\n", dimStyle.Render("--"), dimStyle.Render(msg))
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// ValidationOK prints a green check for a valid field.
func ValidationOK(field, detail string) {
	fmt.Printf("  %s %s: %s\n", successStyle.Render("OK "), field, detail)
}

// ValidationErr prints a red error for an invalid field.
func ValidationErr(field, message, suggestion string) {
	fmt.Printf("  %s %s: %s\n", errorStyle.Render("ERR"), field, message)
	if suggestion != "" {
		fmt.Printf("      %s\n", hintStyle.Render("Hint: "+suggestion))
	}
}
