package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ColorBlack, cfg.Renderer.Background)
	assert.True(t, cfg.Renderer.DepthTest)
	assert.True(t, cfg.Renderer.BackfaceCulling)
	assert.Equal(t, float32(60), cfg.Camera.Angle)
}

func TestDecodeConfigTOML(t *testing.T) {
	src := `
[window]
width = 800
height = 600
title = "demo"

[renderer]
background = { r = 0.1, g = 0.2, b = 0.3, a = 1.0 }
backface_culling = false

[camera]
kind = "trackball"
distance = 25.0
`
	cfg, err := DecodeConfig(strings.NewReader(src), ".toml")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, Color{0.1, 0.2, 0.3, 1}, cfg.Renderer.Background)
	assert.False(t, cfg.Renderer.BackfaceCulling)
	assert.True(t, cfg.Renderer.DepthTest, "unset fields keep defaults")
	assert.Equal(t, CameraTrackball, cfg.Camera.Kind)
	assert.Equal(t, float32(25), cfg.Camera.Distance)
	assert.Equal(t, float32(100), cfg.Camera.Far)
}

func TestDecodeConfigYAML(t *testing.T) {
	src := `
window:
  width: 640
  height: 480
camera:
  kind: static
  position: [1, 2, 3]
assets:
  skybox: https://example.com/sky.png
`
	cfg, err := DecodeConfig(strings.NewReader(src), "yml")
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, CameraStatic, cfg.Camera.Kind)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, "https://example.com/sky.png", cfg.Assets.Skybox)
}

func TestDecodeConfigEmptyYAML(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""), "yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format string
	}{
		{"unknown format", "", ".json"},
		{"unknown field", "[window]\ndepth = 3\n", "toml"},
		{"bad camera kind", "[camera]\nkind = \"orbit\"\n", "toml"},
		{"bad range", "camera:\n  near: 10\n  far: 1\n", "yaml"},
		{"bad size", "window:\n  width: 0\n", "yaml"},
		{"zero up", "[camera]\nup = [0.0, 0.0, 0.0]\n", "toml"},
		{"up along view", "camera:\n  position: [0, 0, 5]\n  up: [0, 0, 2]\n", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tt.src), tt.format)
			assert.Error(t, err)
		})
	}

	_, err := DecodeConfig(strings.NewReader(""), "ini")
	assert.ErrorIs(t, err, ErrUnknownConfigFormat)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"file\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Window.Title)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestColorVectors(t *testing.T) {
	c := NewColor(0.25, 0.5, 0.75, 1)
	assert.Equal(t, float32(0.5), c.RGB().Y())
	assert.Equal(t, float32(1), c.RGBA().W())
}
