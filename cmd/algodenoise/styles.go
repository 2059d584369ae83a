package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#2E86AB")
	warnColor   = lipgloss.Color("#D1495B")
	mutedColor  = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printKV(w io.Writer, key string, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key), valueStyle.Render(fmt.Sprintf(format, args...)))
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
}

// styledHelp renders kong's help with section headings in the accent colour.
func styledHelp(options kong.HelpOptions, ctx *kong.Context) error {
	var plain strings.Builder

	saved := ctx.Stdout
	ctx.Stdout = &plain
	err := kong.DefaultHelpPrinter(options, ctx)
	ctx.Stdout = saved

	if err != nil {
		return err
	}

	for _, line := range strings.SplitAfter(plain.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(line, " ") {
			line = sectionStyle.Render(trimmed) + "\n"
		}

		if _, err := io.WriteString(saved, line); err != nil {
			return err
		}
	}

	return nil
}
