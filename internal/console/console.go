// Package console writes human readable progress and summaries of a run.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/godoxy/internal/doxygen"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for warning indicators
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatHeader renders the run header with the input and output locations.
func FormatHeader(w io.Writer, command, inputDir, outputDir string) {
	content := fmt.Sprintf("%s %s\n%s %s",
		dimStyle.Render("Command:"), titleStyle.Render(command),
		dimStyle.Render("Input:"), inputDir,
	)
	if outputDir != "" {
		content += fmt.Sprintf("\n%s %s", dimStyle.Render("Output:"), outputDir)
	}
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatPhase renders one line for a finished construction phase.
func FormatPhase(w io.Writer, ps doxygen.PhaseStats) {
	status := successStyle.Render("✓")
	if ps.Failed > 0 {
		status = warnStyle.Render("!")
	}
	fmt.Fprintf(w, "%s %-8s %s %d  %s %d  %s %d  %s %d\n",
		status, ps.Phase,
		dimStyle.Render("parsed"), ps.Parsed,
		dimStyle.Render("skipped"), ps.Skipped,
		dimStyle.Render("failed"), ps.Failed,
		dimStyle.Render("claimed"), ps.Removed,
	)
}

// FormatLoadSummary renders the load statistics box.
func FormatLoadSummary(w io.Writer, stats doxygen.Stats) {
	status := successStyle.Render("OK")
	if stats.Failed() > 0 || stats.Invalid > 0 {
		status = warnStyle.Render(fmt.Sprintf("%d FAILED", stats.Failed()+stats.Invalid))
	}

	line1 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Compounds:"), formatNumber(stats.Compounds),
		dimStyle.Render("Nodes:"), formatNumber(stats.Nodes),
		dimStyle.Render("Top level:"), formatNumber(stats.TopLevel),
	)
	line2 := fmt.Sprintf("%s %d  %s", dimStyle.Render("Invalid:"), stats.Invalid, status)

	content := titleStyle.Render("Index Loaded") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatGenerateSummary renders the number of written pages.
func FormatGenerateSummary(w io.Writer, pages, indexes int) {
	fmt.Fprintf(w, "%s %s %s pages, %s index pages\n",
		successStyle.Render("✓"), dimStyle.Render("Wrote"),
		formatNumber(pages), formatNumber(indexes))
}

// FormatWarning writes a single warning line.
func FormatWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warnStyle.Render("warning:"), msg)
}

// FormatError writes a single error line.
func FormatError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
