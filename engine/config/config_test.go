package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxide.toml")
	want := Config{
		FillMode:       "wireframe",
		EnableDebug:    true,
		DebugToggleKey: 70,
		TickRate:       120,
		WindowWidth:    1280,
		WindowHeight:   720,
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxide.toml")
	require.NoError(t, os.WriteFile(path, []byte("fill_mode = \"vertex\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vertex", cfg.FillMode)
	assert.Equal(t, 800, cfg.WindowWidth)
	assert.Equal(t, 600, cfg.WindowHeight)
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxide.toml")
	require.NoError(t, os.WriteFile(path, []byte("fill_mode = [broken"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestParseFillMode(t *testing.T) {
	tests := []struct {
		mode string
		want pipeline.FillMode
	}{
		{"fill", pipeline.FillModeFill},
		{"wireframe", pipeline.FillModeWireframe},
		{"vertex", pipeline.FillModeVertex},
		{"", pipeline.FillModeFill},
		{"sketchy", pipeline.FillModeFill},
	}
	for _, tt := range tests {
		cfg := Config{FillMode: tt.mode}
		assert.Equal(t, tt.want, cfg.ParseFillMode(), "mode %q", tt.mode)
	}
}
