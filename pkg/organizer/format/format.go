// Package format holds the text-level helpers run around the organizer passes.
package format

import (
	"strings"

	"member-organizer/pkg/organizer/types"
)

const defaultIndentation = "  "

var regionMarkers = []string{"//#region", "// #region", "//#endregion", "// #endregion"}

// DetectNewLine returns "\r\n" when the text uses it anywhere, "\n" otherwise.
func DetectNewLine(text string) string {
	if strings.Contains(text, types.CRLF) {
		return types.CRLF
	}
	return types.LF
}

// DetectIndentation returns the indentation unit of the first indented line:
// a tab, four spaces or two spaces. Two spaces when nothing is indented.
func DetectIndentation(text string) string {
	for _, line := range splitLines(text) {
		switch {
		case strings.HasPrefix(line, types.Tab):
			return types.Tab
		case strings.HasPrefix(line, "    "):
			return "    "
		case strings.HasPrefix(line, "  "):
			return "  "
		}
	}
	return defaultIndentation
}

// StripRegionMarkers removes editor region marker lines such as "// #region Fields".
func StripRegionMarkers(text string) string {
	nl := DetectNewLine(text)
	lines := strings.Split(text, nl)
	out := lines[:0]
	for _, line := range lines {
		if isRegionMarker(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, nl)
}

func isRegionMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range regionMarkers {
		if !strings.HasPrefix(trimmed, marker) {
			continue
		}
		rest := trimmed[len(marker):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return true
		}
	}
	return false
}

// CollapseBlankLines turns whitespace-only lines into empty ones, collapses
// runs of blank lines into one and drops blank lines at both ends of the
// text. A final newline is kept when the input had one. Lines starting
// inside one of the keep spans, such as the body of a multi-line template
// literal, are copied as written.
func CollapseBlankLines(text string, keep ...types.Span) string {
	if text == "" {
		return text
	}
	nl := DetectNewLine(text)
	endsWithNewLine := strings.HasSuffix(text, "\n")

	var out []string
	blank := false
	offset := 0
	for _, line := range strings.Split(text, nl) {
		literal := insideAny(keep, offset)
		offset += len(line) + len(nl)
		if !literal && strings.TrimSpace(line) == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	result := strings.Join(out, nl)
	if endsWithNewLine && result != "" {
		result += nl
	}
	return result
}

func insideAny(spans []types.Span, offset int) bool {
	for _, s := range spans {
		if s.Contains(offset) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, types.CRLF, types.LF), types.LF)
}
