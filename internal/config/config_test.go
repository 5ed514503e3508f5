package config

import (
	"os"
	"path/filepath"
	"testing"

	"member-organizer/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
addPublicModifierIfMissing = true
memberOrdering = ["public-static-field", "constructor", "method"]

[log]
level = "debug"

[scan]
workers = 8

[watch]
debounceMillis = 50
metricsAddr = "localhost:9464"
`)

	c, err := Load(path, false)
	require.NoError(t, err)
	assert.True(t, c.AddPublicModifierIfMissing)
	assert.Equal(t, []string{"public-static-field", "constructor", "method"}, c.MemberOrdering)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 8, c.Scan.Workers)
	assert.Equal(t, DefaultConfigScan.MaxFileSizeKB, c.Scan.MaxFileSizeKB)
	assert.Equal(t, DefaultExtensions, c.Scan.Extensions)
	assert.Equal(t, 50, c.Watch.DebounceMillis)
	assert.Equal(t, "localhost:9464", c.Watch.MetricsAddr)
}

func TestLoad_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	c, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, c)

	_, err = Load(missing, false)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad toml", content: "memberOrdering = [\n"},
		{name: "negative workers", content: "[scan]\nworkers = -1\n"},
		{name: "negative debounce", content: "[watch]\ndebounceMillis = -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), false)
			assert.ErrorIs(t, err, errs.ErrConfigInvalid)
		})
	}
}
