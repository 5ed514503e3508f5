package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnified(t *testing.T) {
	before := "class A {\n    b = 1;\n    a = 2;\n}\n"
	after := "class A {\n    a = 2;\n    b = 1;\n}\n"

	got := Unified("src/a.ts", before, after)
	assert.True(t, strings.HasPrefix(got, "--- a/src/a.ts\n+++ b/src/a.ts\n"))
	assert.Contains(t, got, "@@")
	assert.Regexp(t, `\n-    [ab] = [12];\n`, got)
	assert.Regexp(t, `\n\+    [ab] = [12];\n`, got)
}

func TestUnified_NoChange(t *testing.T) {
	assert.Empty(t, Unified("a.ts", "x\n", "x\n"))
}

func TestColorize(t *testing.T) {
	unified := Unified("a.ts", "a\nb\n", "b\na\n")
	colored := Colorize(unified)
	// styling never drops content, whatever the terminal profile
	for _, line := range strings.Split(strings.TrimSpace(unified), "\n") {
		assert.Contains(t, colored, line)
	}
	assert.Equal(t, strings.Count(unified, "\n"), strings.Count(colored, "\n"))
	assert.Empty(t, Colorize(""))
}
