// Package app drives a renderer frame by frame on top of a host surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scenegl/core"
	"scenegl/input"
	"scenegl/renderer"
	"scenegl/scene"
)

var ErrNoScene = errors.New("no current scene")

// Surface is the host drawing area: a desktop window or a browser canvas.
type Surface interface {
	ShouldClose() bool
	// PollEvents delivers pending host events to the input manager.
	PollEvents()
	SwapBuffers()
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)
}

// Application owns the scene registry and the input manager, and runs the
// update and display steps of every frame.
type Application struct {
	Scenes   *scene.Manager
	Events   *input.Manager
	Renderer *renderer.Renderer

	surface Surface
	now     func() time.Time

	width, height int

	frames    int
	fpsWindow time.Time
}

func New(surface Surface, r *renderer.Renderer, events *input.Manager) *Application {
	if events == nil {
		events = input.NewManager()
	}
	return &Application{
		Scenes:   scene.NewManager(),
		Events:   events,
		Renderer: r,
		surface:  surface,
		now:      time.Now,
	}
}

// Frame advances the current scene by elapsed and draws it.
func (a *Application) Frame(elapsed time.Duration) error {
	s := a.Scenes.Current()
	if s == nil {
		return ErrNoScene
	}
	a.Events.DispatchHeld()
	s.Update(elapsed)

	a.Renderer.PrepareFrame()
	return a.Renderer.DrawScene(s)
}

// Resize updates the viewport and the active camera's aspect ratio.
func (a *Application) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.Renderer.SetViewport(width, height)
	if s := a.Scenes.Current(); s != nil && s.ActiveCamera() != nil {
		s.ActiveCamera().AsCamera().SetAspectRatio(width, height)
	}
}

// Run loops until the surface closes or ctx is cancelled. A failing frame
// stops the loop and its error is returned.
func (a *Application) Run(ctx context.Context) error {
	last := a.now()
	a.fpsWindow = last
	for !a.surface.ShouldClose() {
		if ctx.Err() != nil {
			core.Logger().Info("application stopped", "reason", ctx.Err())
			return nil
		}
		a.surface.PollEvents()
		a.syncSize()

		now := a.now()
		elapsed := now.Sub(last)
		last = now

		if err := a.Frame(elapsed); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		a.surface.SwapBuffers()
		a.countFrame(now)
	}
	core.Logger().Info("application closed")
	return nil
}

func (a *Application) syncSize() {
	w, h := a.surface.Size()
	if w != a.width || h != a.height {
		a.Resize(w, h)
	}
}

func (a *Application) countFrame(now time.Time) {
	a.frames++
	if d := now.Sub(a.fpsWindow); d >= time.Second {
		core.Logger().Debug("frame rate", "fps", float64(a.frames)/d.Seconds())
		a.frames = 0
		a.fpsWindow = now
	}
}
