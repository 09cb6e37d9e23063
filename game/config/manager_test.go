package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/tile-merge-game/game/engine"
)

func testConfig(name string, size int) *engine.GameConfig {
	return &engine.GameConfig{
		Name:            name,
		Description:     name + " board",
		GridSize:        size,
		StartTiles:      2,
		WinValue:        2048,
		FourProbability: 0.1,
		Messages: engine.Messages{
			Welcome:  "Welcome!",
			Victory:  "You win!",
			GameOver: "Game over!",
		},
	}
}

func writeConfigFile(t *testing.T, dir, id string, cfg interface{}) {
	t.Helper()

	var data []byte
	switch v := cfg.(type) {
	case string:
		data = []byte(v)
	default:
		var err error
		data, err = json.MarshalIndent(v, "", "  ")
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), data, 0644))
}

func TestNewManager(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]interface{}
		wantDefault string
	}{
		{
			name:        "empty directory falls back to built-in rules",
			wantDefault: "default",
		},
		{
			name: "classic preferred",
			files: map[string]interface{}{
				"aaa":     testConfig("First", 3),
				"classic": testConfig("Classic", 4),
			},
			wantDefault: "Classic",
		},
		{
			name: "first valid config when classic is missing",
			files: map[string]interface{}{
				"aaa": `{"name": "broken"`,
				"bbb": testConfig("Second", 5),
			},
			wantDefault: "Second",
		},
		{
			name: "invalid classic is skipped",
			files: map[string]interface{}{
				"classic": testConfig("", 4),
				"mini":    testConfig("Mini", 3),
			},
			wantDefault: "Mini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for id, cfg := range tt.files {
				writeConfigFile(t, dir, id, cfg)
			}

			m, err := NewManager(dir)
			require.NoError(t, err)
			require.NotNil(t, m.GetDefault())
			assert.Equal(t, tt.wantDefault, m.GetDefault().Name)
		})
	}
}

func TestNewManager_MissingDirectory(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "config directory does not exist")
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "big", testConfig("Big", 5))
	writeConfigFile(t, dir, "broken", `{not json}`)
	writeConfigFile(t, dir, "huge", testConfig("Huge", 12))

	m, err := NewManager(dir)
	require.NoError(t, err)

	tests := []struct {
		name     string
		id       string
		wantName string
		wantErr  error
		errText  string
	}{
		{name: "by id", id: "big", wantName: "Big"},
		{name: "with extension", id: "big.json", wantName: "Big"},
		{name: "missing", id: "nope", wantErr: ErrConfigNotFound, errText: "configuration not found"},
		{name: "bad json", id: "broken", errText: "failed to parse config"},
		{name: "fails validation", id: "huge", wantErr: ErrInvalidConfig, errText: "grid_size"},
		{name: "path traversal", id: "../big", wantErr: ErrInvalidName},
		{name: "hidden file", id: ".big", wantErr: ErrInvalidName},
		{name: "empty", id: "", wantErr: ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := m.LoadConfig(tt.id)
			if tt.wantErr != nil || tt.errText != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errText != "" {
					assert.Contains(t, err.Error(), tt.errText)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, cfg.Name)
		})
	}
}

func TestManager_LoadConfig_Caches(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "mini", testConfig("Mini", 3))

	m, err := NewManager(dir)
	require.NoError(t, err)

	first, err := m.LoadConfig("mini")
	require.NoError(t, err)

	// Edits on disk are not seen until the cache is refreshed
	writeConfigFile(t, dir, "mini", testConfig("Mini Edited", 3))
	second, err := m.LoadConfig("mini")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "Mini", second.Name)

	require.NoError(t, m.RefreshCache())
	third, err := m.LoadConfig("mini")
	require.NoError(t, err)
	assert.Equal(t, "Mini Edited", third.Name)
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", testConfig("Classic", 4))
	writeConfigFile(t, dir, "mini", testConfig("Mini", 3))
	writeConfigFile(t, dir, "broken", `{`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	m, err := NewManager(dir)
	require.NoError(t, err)

	infos, err := m.ListConfigs()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "classic.json", infos[0].Filename)
	assert.Equal(t, "classic", infos[0].ConfigID)
	assert.Equal(t, "Classic", infos[0].Name)
	assert.Equal(t, 4, infos[0].GridSize)
	assert.Equal(t, 2048, infos[0].WinValue)

	assert.Equal(t, "mini", infos[1].ConfigID)
	assert.Equal(t, 3, infos[1].GridSize)
	assert.Equal(t, "Mini board", infos[1].Description)
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", testConfig("Classic", 4))
	writeConfigFile(t, dir, "mini", testConfig("Mini", 3))

	m, err := NewManager(dir)
	require.NoError(t, err)
	require.Equal(t, "Classic", m.GetDefault().Name)

	require.NoError(t, m.SetDefault("mini"))
	assert.Equal(t, "Mini", m.GetDefault().Name)

	assert.ErrorIs(t, m.SetDefault("nope"), ErrConfigNotFound)
	assert.Equal(t, "Mini", m.GetDefault().Name)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, m.SaveConfig("saved", testConfig("Saved", 5)))
	_, err = os.Stat(filepath.Join(dir, "saved.json"))
	require.NoError(t, err)

	loaded, err := m.LoadConfig("saved.json")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.GridSize)

	// A fresh manager reads the file back
	other, err := NewManager(dir)
	require.NoError(t, err)
	reread, err := other.LoadConfig("saved")
	require.NoError(t, err)
	assert.Equal(t, "Saved", reread.Name)

	t.Run("invalid config is rejected", func(t *testing.T) {
		bad := testConfig("Bad", 4)
		bad.WinValue = 1000
		assert.ErrorIs(t, m.SaveConfig("bad", bad), ErrInvalidConfig)
		_, err := os.Stat(filepath.Join(dir, "bad.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("invalid names are rejected", func(t *testing.T) {
		for _, name := range []string{"../escape", "a/b", `a\b`, ".hidden", "", ".json"} {
			assert.ErrorIs(t, m.SaveConfig(name, testConfig("X", 4)), ErrInvalidName, "SaveConfig(%q)", name)
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeConfigFile(t, dir, fmt.Sprintf("cfg%d", i), testConfig(fmt.Sprintf("Config %d", i), 3+i%3))
	}

	m, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := m.LoadConfig(fmt.Sprintf("cfg%d", i%5)); err != nil {
				errs <- err
			}
			if i%10 == 0 {
				if err := m.RefreshCache(); err != nil {
					errs <- err
				}
			}
			if _, err := m.ListConfigs(); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestShippedConfigs(t *testing.T) {
	m, err := NewManager("../../configs")
	require.NoError(t, err)

	tests := []struct {
		id       string
		name     string
		gridSize int
		winValue int
	}{
		{"classic", "Classic", 4, 2048},
		{"mini", "Mini", 3, 256},
		{"big", "Big", 5, 2048},
		{"marathon", "Marathon", 6, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cfg, err := m.LoadConfig(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.name, cfg.Name)
			assert.Equal(t, tt.gridSize, cfg.GridSize)
			assert.Equal(t, tt.winValue, cfg.WinValue)
			assert.NotEmpty(t, cfg.Messages.KeepPlaying)
		})
	}

	assert.Equal(t, "Classic", m.GetDefault().Name)
}
