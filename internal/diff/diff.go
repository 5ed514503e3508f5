// Package diff renders the change an organize run would make to a file.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6188"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#78DCE8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Unified returns a unified diff of before and after, empty when they match.
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+path, "b/"+path, before, edits))
}

// Colorize styles the lines of a unified diff for a terminal.
func Colorize(unified string) string {
	if unified == "" {
		return unified
	}
	lines := strings.SplitAfter(unified, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = headerStyle.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = hunkStyle.Render(text)
		case strings.HasPrefix(text, "+"):
			text = addedStyle.Render(text)
		case strings.HasPrefix(text, "-"):
			text = removedStyle.Render(text)
		}
		b.WriteString(text)
		if strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
