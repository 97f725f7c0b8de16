package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "defs", cfg.DefsDir)
	assert.Equal(t, "python", cfg.Lang)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadJSONAndEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "babel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port":"9000","lang":"matlab"}`), 0o644))

	cfg := Load(path, nil)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "matlab", cfg.Lang)

	t.Setenv("BABEL_PORT", "9001")
	t.Setenv("BABEL_AUTO_MIGRATE", "yes")
	cfg = Load(path, nil)
	assert.Equal(t, "9001", cfg.Port)
	assert.True(t, cfg.AutoMigrate)

	// flags win over env and file
	cfg = Load(path, []string{"-port", "9002", "-lang", "python", "-db", "postgres://localhost/babel"})
	assert.Equal(t, "9002", cfg.Port)
	assert.Equal(t, "python", cfg.Lang)
	assert.Equal(t, "postgres://localhost/babel", cfg.DBURL)
}
