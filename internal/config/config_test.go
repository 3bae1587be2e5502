package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecrack/internal/game"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, game.ClassicDefinition(), cfg.Game.Definition)
	assert.Equal(t, 0, cfg.Solver.Workers)
	assert.False(t, cfg.Solver.UniquePremise)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  workers: 3
  unique_premise: true
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Solver.Workers)
	assert.True(t, cfg.Solver.UniquePremise)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, game.ClassicDefinition(), cfg.Game.Definition)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Logging, cfg.Logging)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CRACK_LOG_LEVEL", "debug")
	t.Setenv("CRACK_WORKERS", "7")
	t.Setenv("CRACK_NO_COLOR", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Solver.Workers)
	assert.True(t, cfg.UI.NoColor)
}

func TestLoad_EnvIgnoresGarbageWorkers(t *testing.T) {
	t.Setenv("CRACK_WORKERS", "many")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Solver.Workers)
}

func TestValidate_Rejections(t *testing.T) {
	t.Run("bad level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.Validate())
	})
	t.Run("bad format", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
	t.Run("negative workers via file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("solver:\n  workers: -1\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("bad definition", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
game:
  definition:
    positions:
      - name: solo
    min_digit: 0
    max_digit: 5
`), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, game.ErrBadDefinition)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("CRACK_LOG_LEVEL", "")
	t.Setenv("CRACK_LOG_FORMAT", "")
	t.Setenv("CRACK_WORKERS", "")
	t.Setenv("CRACK_NO_COLOR", "")
	t.Setenv("NO_COLOR", "")

	cfg := DefaultConfig()
	cfg.Solver.Workers = 5
	cfg.Logging.Level = "info"
	cfg.UI.NoColor = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("config did not survive the round trip:\n%s", diff)
	}
}
