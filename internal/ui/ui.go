package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Logger is the package-level structured logger.
var Logger = log.New(io.Discard)

// Styles, set by Init.
var (
	headerStyle  lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	boldStyle    lipgloss.Style
	stepStyle    lipgloss.Style
)

// Out and Err are where the helpers write. Tests swap them.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

// Init sets up color detection, lipgloss styles, and the structured logger.
// Call this once at CLI startup.
func Init(noColorFlag, verbose bool) {
	noColor := noColorFlag || os.Getenv("NO_COLOR") != ""

	// Pre-set dark background to prevent the termenv OSC query.
	lipgloss.SetHasDarkBackground(true)
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boldStyle = lipgloss.NewStyle().Bold(true)
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	Logger = log.NewWithOptions(Err, log.Options{
		ReportTimestamp: false,
		Prefix:          "specmig",
	})
	if verbose {
		Logger.SetLevel(log.DebugLevel)
	}
	if noColor {
		Logger.SetColorProfile(termenv.Ascii)
	}
}

// Header prints a section header.
func Header(msg string) {
	fmt.Fprintf(Err, "%s %s\n", headerStyle.Render("──"), boldStyle.Render(msg))
}

// Status prints a styled status message.
func Status(msg string) {
	fmt.Fprintf(Err, "%s %s\n", stepStyle.Render("▸"), msg)
}

// Success prints a styled completion message.
func Success(msg string) {
	fmt.Fprintf(Err, "%s %s\n", successStyle.Render("✓"), msg)
}

// Warning prints a styled warning message.
func Warning(msg string) {
	fmt.Fprintf(Err, "%s %s\n", warningStyle.Render("⚠"), msg)
}

// Error prints a styled error message.
func Error(msg string) {
	fmt.Fprintf(Err, "%s %s\n", errorStyle.Render("✗"), msg)
}

// Table prints a formatted table with headers and rows to w.
func Table(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, boldStyle.Render(strings.Join(headers, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
