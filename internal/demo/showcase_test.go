package demo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/gpu/gputest"
	"scenegl/input"
	"scenegl/renderer"
	"scenegl/scene"
)

func newRenderer(t *testing.T) (*gputest.Recorder, *renderer.Renderer) {
	t.Helper()
	rec := gputest.NewRecorder()
	r, err := renderer.New(gpu.NewDevice(rec))
	require.NoError(t, err)
	return rec, r
}

func TestBuildDrawsEveryPrimitive(t *testing.T) {
	rec, r := newRenderer(t)
	s, err := Build(context.Background(), core.DefaultConfig(), r, input.NewManager())
	require.NoError(t, err)

	for _, name := range []string{"axis", "cube", "sphere", "ground", "grid", "ambient", "sun", "lamp", "camera"} {
		assert.NotNil(t, s.Root().Find(name), name)
	}
	assert.IsType(t, &scene.FreeFlyCamera{}, s.ActiveCamera())
	assert.Nil(t, s.Skybox())

	s.Update(0)
	require.NoError(t, r.DrawScene(s))
	assert.Len(t, rec.Draws, 5)
	assert.Equal(t, 1, rec.ProgramUses())
}

func TestBuildSetsPointerLock(t *testing.T) {
	_, r := newRenderer(t)
	cfg := core.DefaultConfig()
	cfg.Camera.LockPointer = true
	events := input.NewManager()

	_, err := Build(context.Background(), cfg, r, events)
	require.NoError(t, err)
	assert.True(t, events.WantPointerLock)
}

func TestBuildLoadsAssets(t *testing.T) {
	_, r := newRenderer(t)
	cfg := core.DefaultConfig()
	missing := filepath.Join(t.TempDir(), "missing.png")
	cfg.Assets.CubeTexture = missing
	cfg.Assets.Skybox = missing

	s, err := Build(context.Background(), cfg, r, nil)
	require.NoError(t, err)
	require.NotNil(t, s.Skybox())

	cube := s.Root().Find("cube").Data().(*scene.Mesh)
	require.NotNil(t, cube.Texture())
	assert.Error(t, cube.Texture().Wait(context.Background()))

	s.Update(0)
	assert.Error(t, r.DrawScene(s))
}

func TestNewCameraKinds(t *testing.T) {
	cfg := core.DefaultConfig().Camera

	cfg.Kind = core.CameraStatic
	c, err := NewCamera(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &scene.Camera{}, c)
	assert.Equal(t, cfg.Far, c.AsCamera().MaxRange)

	cfg.Kind = core.CameraTrackball
	cfg.Distance = 4
	c, err = NewCamera(cfg, input.NewManager())
	require.NoError(t, err)
	tb, ok := c.(*scene.TrackballCamera)
	require.True(t, ok)
	assert.Equal(t, float32(4), tb.Distance)
	assert.InDelta(t, -4, tb.Position.X(), 1e-4)
	assert.InDelta(t, 0, tb.Position.Y(), 1e-4)

	cfg.Kind = core.CameraFreeFly
	c, err = NewCamera(cfg, input.NewManager())
	require.NoError(t, err)
	ff := c.(*scene.FreeFlyCamera)
	assert.InDelta(t, -9, ff.Target.X(), 1e-4)

	cfg.Kind = "orbit"
	_, err = NewCamera(cfg, nil)
	assert.Error(t, err)
}
