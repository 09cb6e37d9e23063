package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"name": "Test",
	"description": "A test board",
	"grid_size": 3,
	"start_tiles": 2,
	"win_value": 64,
	"four_probability": 0.1,
	"messages": {
		"welcome": "hi",
		"victory": "won",
		"game_over": "over",
		"keep_playing": "go on"
	}
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:      "valid config",
			content:   validConfig,
			wantValid: true,
		},
		{
			name:       "invalid json",
			content:    `{"name": "broken",`,
			wantErrors: []string{"Invalid JSON"},
		},
		{
			name:       "unknown field",
			content:    strings.Replace(validConfig, `"grid_size"`, `"walls": 3, "grid_size"`, 1),
			wantErrors: []string{"Invalid JSON", "walls"},
		},
		{
			name:       "bad win value",
			content:    strings.Replace(validConfig, `"win_value": 64`, `"win_value": 100`, 1),
			wantErrors: []string{"win_value must be a power of two"},
		},
		{
			name:       "no start tiles",
			content:    strings.Replace(validConfig, `"start_tiles": 2`, `"start_tiles": 0`, 1),
			wantErrors: []string{"start_tiles must be at least 1"},
		},
		{
			name: "unreachable win tile",
			content: strings.NewReplacer(
				`"grid_size": 3`, `"grid_size": 2`,
				`"win_value": 64`, `"win_value": 64`,
				`"four_probability": 0.1`, `"four_probability": 0`,
			).Replace(validConfig),
			wantErrors: []string{"win_value 64 is unreachable on a 2x2 board (largest possible tile is 16)"},
		},
		{
			name:         "warnings only",
			content:      strings.Replace(strings.Replace(validConfig, `"keep_playing": "go on"`, `"keep_playing": ""`, 1), `0.1`, `1`, 1),
			wantValid:    true,
			wantWarnings: []string{"messages.keep_playing is empty", "four_probability is 1"},
		},
		{
			name: "several problems at once",
			content: strings.NewReplacer(
				`"start_tiles": 2`, `"start_tiles": 0`,
				`"win_value": 64`, `"win_value": 4096`,
			).Replace(validConfig),
			wantErrors: []string{"start_tiles must be at least 1", "win_value 4096 is unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "test.json", tt.content)
			result := validateConfig(path)

			assert.Equal(t, "test.json", result.File)
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)

			joined := strings.Join(result.Errors, "\n")
			for _, want := range tt.wantErrors {
				assert.Contains(t, joined, want)
			}
			warnings := strings.Join(result.Warnings, "\n")
			for _, want := range tt.wantWarnings {
				assert.Contains(t, warnings, want)
			}
		})
	}
}

func TestValidateConfig_Info(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "test.json", validConfig)
	result := validateConfig(path)

	require.True(t, result.Valid)
	assert.Equal(t, "Test", result.Name)
	assert.Contains(t, result.Info, "✓ Grid: 3x3")
	assert.Contains(t, result.Info, "✓ Win tile: 64")
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/file.json")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to read file")
}

func TestLargestReachableTile(t *testing.T) {
	tests := []struct {
		size int
		four float64
		want int
	}{
		{2, 0, 16},
		{2, 0.1, 32},
		{4, 0.1, 131072},
		{8, 0.1, 1 << 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, largestReachableTile(tt.size, tt.four), "size %d four %g", tt.size, tt.four)
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.json", validConfig)
	writeConfig(t, dir, "b.json", validConfig)
	writeConfig(t, dir, "c.json", `not json`)

	results, err := validateDir(dir)
	require.Error(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.Contains(t, results[1].Errors[0], `name "Test" is already used by a.json`)
	assert.False(t, results[2].Valid)

	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "b.json")
	assert.Contains(t, err.Error(), "c.json")
}

func TestValidateDir_Empty(t *testing.T) {
	_, err := validateDir(t.TempDir())
	assert.Error(t, err)
}

func TestCommand_ShippedConfigs(t *testing.T) {
	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"validate", "--config-dir", "../../configs"})
	require.NoError(t, err, buf.String())

	out := buf.String()
	assert.Contains(t, out, "✅ classic.json (Classic)")
	assert.Contains(t, out, "✅ mini.json (Mini)")
	assert.NotContains(t, out, "❌")
}

func TestCommand_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ok.json", validConfig)
	writeConfig(t, dir, "bad.json", strings.Replace(validConfig, `"Test"`, `"Other"`, 1)[:40])

	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"validate", "--config-dir", dir})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "❌ bad.json")
	assert.Contains(t, buf.String(), "1/2 configs valid")
}
