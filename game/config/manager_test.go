package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/solitaire/game/engine"
)

func createValidConfig(name string) *engine.GameConfig {
	return &engine.GameConfig{
		Name:        name,
		Description: "Test configuration",
		Layout:      engine.DefaultLayout(),
	}
}

func writeYAML(t *testing.T, dir, filename string, config *engine.GameConfig) {
	t.Helper()
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0644))
}

func writeJSON(t *testing.T, dir, filename string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("prefers classic as default", func(t *testing.T) {
		dir := t.TempDir()
		writeYAML(t, dir, "aaa.yaml", createValidConfig("First"))
		writeYAML(t, dir, "classic.yaml", createValidConfig("Classic"))

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Classic", manager.GetDefault().Name)
	})

	t.Run("falls back to first valid file", func(t *testing.T) {
		dir := t.TempDir()
		writeJSON(t, dir, "wide.json", createValidConfig("Wide"))

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Wide", manager.GetDefault().Name)
	})

	t.Run("empty directory uses built-in layout", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, manager.GetDefault())
		assert.Equal(t, engine.DefaultLayout(), manager.GetDefault().Layout)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		assert.Error(t, err)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	large := createValidConfig("Large")
	large.Layout.CardWidth = 100
	large.Layout.CardHeight = 140
	writeYAML(t, dir, "large.yaml", large)
	writeYAML(t, dir, "short.yml", createValidConfig("Short"))
	writeJSON(t, dir, "legacy.json", createValidConfig("Legacy"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("layout:\n  card_width: 3\nname: Broken\n"), 0644))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		config, err := manager.LoadConfig("large")
		require.NoError(t, err)
		assert.Equal(t, "Large", config.Name)
		assert.Equal(t, 100.0, config.Layout.CardWidth)
	})

	t.Run("by file name", func(t *testing.T) {
		config, err := manager.LoadConfig("large.yaml")
		require.NoError(t, err)
		assert.Equal(t, "Large", config.Name)
	})

	t.Run("yml and json", func(t *testing.T) {
		config, err := manager.LoadConfig("short")
		require.NoError(t, err)
		assert.Equal(t, "Short", config.Name)

		config, err = manager.LoadConfig("legacy")
		require.NoError(t, err)
		assert.Equal(t, "Legacy", config.Name)
	})

	t.Run("cached", func(t *testing.T) {
		a, _ := manager.LoadConfig("large")
		b, err := manager.LoadConfig("large.yaml")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("not found", func(t *testing.T) {
		for _, name := range []string{"missing", "missing.yaml", "", "../large", "sub/large"} {
			_, err := manager.LoadConfig(name)
			assert.ErrorIs(t, err, ErrConfigNotFound, name)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := manager.LoadConfig("broken")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.Contains(t, err.Error(), "card_width")
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("Classic"))
	writeJSON(t, dir, "beta.json", createValidConfig("Beta"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invalid.yaml"), []byte("name: \"\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "beta", configs[0].ConfigID)
	assert.Equal(t, "beta.json", configs[0].Filename)
	assert.Equal(t, "classic", configs[1].ConfigID)
	assert.Equal(t, "Classic", configs[1].Name)
	assert.Equal(t, float64(engine.DefaultCardWidth), configs[1].CardWidth)
	assert.Equal(t, engine.DefaultCascadeSlots, configs[1].CascadeSlots)
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("Classic"))
	writeYAML(t, dir, "large.yaml", createValidConfig("Large"))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, manager.SetDefault("large"))
	assert.Equal(t, "Large", manager.GetDefault().Name)

	assert.ErrorIs(t, manager.SetDefault("missing"), ErrConfigNotFound)
	assert.Equal(t, "Large", manager.GetDefault().Name)
}

func TestManager_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("Classic"))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			config, err := manager.LoadConfig("classic")
			assert.NoError(t, err)
			assert.Equal(t, "Classic", config.Name)
			_, err = manager.ListConfigs()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
