package sweep

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles degrade to plain text automatically when stdout is not a terminal.
var (
	warnStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	retainedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	closingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func printWarning(out io.Writer, root string, targets int, dryRun bool) {
	msg := fmt.Sprintf("This will permanently remove up to %d planned targets under\n%s", targets, root)
	if dryRun {
		msg += "\n(dry run: nothing will actually be deleted)"
	}
	fmt.Fprintln(out, warnStyle.Render(msg))
}

func printCancelled(out io.Writer) {
	fmt.Fprintln(out, "Sweep cancelled. No files were removed.")
}

func printBanner(out io.Writer, category string) {
	fmt.Fprintln(out, bannerStyle.Render("==> "+category))
}

func printRemoved(out io.Writer, path string, isDir bool) {
	label := "removed"
	if isDir {
		label = "removed (recursive)"
	}
	fmt.Fprintf(out, "  %s %s\n", removedStyle.Render(label), path)
}

func printRetained(out io.Writer, retained []string) {
	if len(retained) == 0 {
		return
	}
	fmt.Fprintln(out, bannerStyle.Render("==> Retained files"))
	for _, path := range retained {
		fmt.Fprintf(out, "  %s\n", retainedStyle.Render("keep "+path))
	}
}

func printClosing(out io.Writer, summary *Summary) {
	if len(summary.Failures) > 0 {
		fmt.Fprintln(out, failureStyle.Render(
			fmt.Sprintf("Sweep finished with %d failure(s):", len(summary.Failures))))
		for _, f := range summary.Failures {
			fmt.Fprintf(out, "  %s: %v\n", f.Path, f.Err)
		}
		return
	}
	verb := "removed"
	if summary.DryRun {
		verb = "would remove"
	}
	fmt.Fprintln(out, closingStyle.Render(
		fmt.Sprintf("Sweep complete: %s %d entr%s, %s freed.",
			verb, summary.Removed, plural(summary.Removed), formatBytes(summary.BytesFreed))))
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
