package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/gpu"
	"scenegl/gpu/gputest"
	"scenegl/input"
	"scenegl/renderer"
	"scenegl/scene"
)

type fakeSurface struct {
	closeAfter    int
	polls, swaps  int
	width, height int
}

func (s *fakeSurface) ShouldClose() bool { return s.swaps >= s.closeAfter }
func (s *fakeSurface) PollEvents()       { s.polls++ }
func (s *fakeSurface) SwapBuffers()      { s.swaps++ }
func (s *fakeSurface) Size() (int, int)  { return s.width, s.height }

// steppingClock advances by step on every reading.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newTestApp(t *testing.T, surface Surface) (*gputest.Recorder, *Application) {
	t.Helper()
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	r, err := renderer.New(dev)
	require.NoError(t, err)
	a := New(surface, r, nil)
	a.now = steppingClock(10 * time.Millisecond)
	return rec, a
}

func addCubeScene(t *testing.T, a *Application, camera scene.Viewer) *scene.Scene {
	t.Helper()
	cube, err := scene.NewCube(a.Renderer.Device(), 1, nil)
	require.NoError(t, err)
	cube.SetShader(a.Renderer.BasicProgram())

	s := scene.NewScene()
	require.NoError(t, s.AddNode(scene.NewNode(cube)))
	s.SetActiveCamera(camera)
	require.NoError(t, a.Scenes.AddScene("main", s, true))
	return s
}

func TestRunDrawsUntilClosed(t *testing.T) {
	surface := &fakeSurface{closeAfter: 3, width: 800, height: 400}
	rec, a := newTestApp(t, surface)
	cam := scene.NewCamera()
	addCubeScene(t, a, cam)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, surface.swaps)
	assert.Equal(t, 3, surface.polls)
	assert.Len(t, rec.Draws, 3)
	assert.Equal(t, [][4]int32{{0, 0, 800, 400}}, rec.Viewports)
	assert.Equal(t, float32(2), cam.AspectRatio)
}

func TestRunFollowsResize(t *testing.T) {
	surface := &fakeSurface{closeAfter: 2, width: 100, height: 100}
	rec, a := newTestApp(t, surface)
	cam := scene.NewCamera()
	addCubeScene(t, a, cam)

	a.Resize(200, 100)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, [][4]int32{{0, 0, 200, 100}, {0, 0, 100, 100}}, rec.Viewports)
	assert.Equal(t, float32(1), cam.AspectRatio)
}

func TestRunFeedsElapsedTime(t *testing.T) {
	surface := &fakeSurface{closeAfter: 1, width: 4, height: 3}
	_, a := newTestApp(t, surface)
	cam := scene.NewFreeFlyCamera(a.Events)
	addCubeScene(t, a, cam)

	a.Events.KeyDown(input.KeyW)
	require.NoError(t, a.Run(context.Background()))
	assert.InDelta(t, -10.1, cam.Position.X(), 1e-4)
}

func TestRunStopsOnFrameError(t *testing.T) {
	surface := &fakeSurface{closeAfter: 5}
	_, a := newTestApp(t, surface)
	require.NoError(t, a.Scenes.AddScene("empty", scene.NewScene(), true))

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, renderer.ErrNoActiveCamera)
	assert.Zero(t, surface.swaps)
}

func TestRunHonoursCancel(t *testing.T) {
	surface := &fakeSurface{closeAfter: 5}
	_, a := newTestApp(t, surface)
	addCubeScene(t, a, scene.NewCamera())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
	assert.Zero(t, surface.swaps)
}

func TestFrameWithoutScene(t *testing.T) {
	_, a := newTestApp(t, &fakeSurface{})
	assert.ErrorIs(t, a.Frame(time.Millisecond), ErrNoScene)
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	rec, a := newTestApp(t, &fakeSurface{})
	a.Resize(0, 0)
	assert.Empty(t, rec.Viewports)
}
