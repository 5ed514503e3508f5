package main

import (
	"fmt"
	"io"
	"path/filepath"

	"member-organizer/internal/service"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorGreen  = "#A9DC76"
	colorRed    = "#FF6188"
	colorOrange = "#FC9867"
	colorDim    = "#727072"
)

var (
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOrange))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

func statusLabel(status service.Status) string {
	switch status {
	case service.StatusChanged:
		return changedStyle.Render(string(status))
	case service.StatusFailed:
		return errorStyle.Render(string(status))
	case service.StatusSkipped:
		return skippedStyle.Render(string(status))
	}
	return dimStyle.Render(string(status))
}

// printResult writes one line per file that needs attention.
func printResult(w io.Writer, base string, r *service.FileResult) {
	if r.Status == service.StatusUnchanged {
		return
	}
	name := r.Path
	if rel, err := filepath.Rel(base, r.Path); err == nil {
		name = rel
	}
	if r.Err != nil {
		fmt.Fprintf(w, "%s %s %s\n", statusLabel(r.Status), name, dimStyle.Render(r.Err.Error()))
		return
	}
	fmt.Fprintf(w, "%s %s\n", statusLabel(r.Status), name)
}

func printSummary(w io.Writer, s *service.Summary) {
	fmt.Fprintf(w, "%s %s %s, %s, %s, %s %s\n",
		titleStyle.Render("organized"),
		dimStyle.Render(s.Root+":"),
		changedStyle.Render(fmt.Sprintf("%d changed", s.Changed)),
		dimStyle.Render(fmt.Sprintf("%d unchanged", s.Unchanged)),
		skippedStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)),
		errorStyle.Render(fmt.Sprintf("%d failed", s.Failed)),
		dimStyle.Render(fmt.Sprintf("in %v (run %s)", s.Duration.Round(1e6), s.RunID)),
	)
}
