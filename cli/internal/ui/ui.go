// Package ui holds the terminal output helpers shared by the CLI commands.
package ui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	successColor = lipgloss.Color("#22C55E")
	errorColor   = lipgloss.Color("#EF4444")
	warnColor    = lipgloss.Color("#EAB308")
	infoColor    = lipgloss.Color("#38BDF8")
	mutedColor   = lipgloss.Color("#64748B")

	titleStyle   = lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	sqlPrinter = color.New(color.FgHiWhite)
)

// Header prints a bordered title for a command run.
func Header(title, subtitle string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(infoColor).
		Padding(0, 2).
		Render(titleStyle.Render(title) + "\n" + mutedStyle.Render(subtitle))
	fmt.Println(box)
}

// Success prints a checkmarked success line.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Error prints an error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func Warning(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// Info prints an informational line.
func Info(format string, args ...any) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Table renders a header row plus data rows through pterm.
func Table(headers []string, rows [][]string) {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Spinner starts a pterm spinner; callers stop it via the returned printer.
func Spinner(message string) *pterm.SpinnerPrinter {
	sp, _ := pterm.DefaultSpinner.Start(message)
	return sp
}

// SQL prints rendered SQL dimly so it stands apart from status lines.
func SQL(content string) {
	sqlPrinter.Println(content)
}

// Markdown renders markdown help text for the terminal.
func Markdown(content string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(content)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// Confirm asks the user to approve a destructive action. Defaults to no.
func Confirm(message string) bool {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false
	}
	return ok
}
