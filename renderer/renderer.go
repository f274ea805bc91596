package renderer

import (
	"errors"
	"fmt"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/scene"
)

var ErrNoActiveCamera = errors.New("no active camera")

// Renderer owns the global GL state and draws scenes through a FrameRender.
type Renderer struct {
	dev   *gpu.Device
	frame *FrameRender
	basic *gpu.Program

	background core.Color
	depth      bool
	culling    bool

	width, height int
}

// Option tweaks a Renderer before its state is applied to the context.
type Option func(*Renderer)

func WithBackground(c core.Color) Option {
	return func(r *Renderer) { r.background = c }
}

func WithDepthTest(enabled bool) Option {
	return func(r *Renderer) { r.depth = enabled }
}

func WithBackfaceCulling(enabled bool) Option {
	return func(r *Renderer) { r.culling = enabled }
}

// WithConfig applies the renderer section of a configuration file.
func WithConfig(cfg core.RendererConfig) Option {
	return func(r *Renderer) {
		r.background = cfg.Background
		r.depth = cfg.DepthTest
		r.culling = cfg.BackfaceCulling
	}
}

// New compiles the basic program and applies the initial state. Depth test
// and backface culling start enabled over a black background.
func New(dev *gpu.Device, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		dev:        dev,
		frame:      NewFrameRender(),
		background: core.ColorBlack,
		depth:      true,
		culling:    true,
	}
	for _, opt := range opts {
		opt(r)
	}

	basic, err := dev.NewProgramFromSource("basic", BasicVertexShader, BasicFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create basic program: %w", err)
	}
	r.basic = basic

	r.SetBackgroundColor(r.background)
	r.setCapability(gpu.DepthTest, r.depth)
	r.setCapability(gpu.CullFace, r.culling)

	core.Logger().Info("renderer initialized", "depth", r.depth, "culling", r.culling)
	return r, nil
}

func (r *Renderer) Device() *gpu.Device { return r.dev }

// BasicProgram returns the built-in program meshes can share.
func (r *Renderer) BasicProgram() *gpu.Program { return r.basic }

// Frame returns the collector filled by the last DrawScene.
func (r *Renderer) Frame() *FrameRender { return r.frame }

func (r *Renderer) SetBackgroundColor(c core.Color) {
	r.background = c
	r.dev.Context().ClearColor(c.R, c.G, c.B, c.A)
}

func (r *Renderer) BackgroundColor() core.Color { return r.background }

func (r *Renderer) EnableDepth() {
	r.depth = true
	r.setCapability(gpu.DepthTest, true)
}

func (r *Renderer) DisableDepth() {
	r.depth = false
	r.setCapability(gpu.DepthTest, false)
}

func (r *Renderer) IsDepthEnabled() bool { return r.depth }

func (r *Renderer) EnableBackfaceCulling() {
	r.culling = true
	r.setCapability(gpu.CullFace, true)
}

func (r *Renderer) DisableBackfaceCulling() {
	r.culling = false
	r.setCapability(gpu.CullFace, false)
}

func (r *Renderer) IsBackfaceCullingEnabled() bool { return r.culling }

func (r *Renderer) setCapability(c gpu.Enum, enabled bool) {
	if enabled {
		r.dev.Context().Enable(c)
		return
	}
	r.dev.Context().Disable(c)
}

// SetViewport resizes the drawing area. Empty sizes are ignored.
func (r *Renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.dev.Context().Viewport(0, 0, int32(width), int32(height))
}

// Viewport returns the size set by the last SetViewport.
func (r *Renderer) Viewport() (int, int) { return r.width, r.height }

// PrepareFrame clears the color buffer, and the depth buffer when depth
// testing is on.
func (r *Renderer) PrepareFrame() {
	mask := gpu.ColorBufferBit
	if r.depth {
		mask |= gpu.DepthBufferBit
	}
	r.dev.Context().Clear(mask)
}

// DrawScene collects the visible nodes of s and draws them through its
// active camera.
func (r *Renderer) DrawScene(s *scene.Scene) error {
	if s == nil {
		return scene.ErrNilScene
	}
	r.frame.Reset()

	cam := s.ActiveCamera()
	if cam == nil {
		return ErrNoActiveCamera
	}
	if err := s.Root().Collect(r.frame); err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	return r.frame.Render(r.dev, cam.AsCamera(), s.Skybox())
}

// Destroy frees the basic program. Meshes and textures belong to the
// caller.
func (r *Renderer) Destroy() {
	r.frame.Reset()
	if r.basic != nil {
		r.basic.Delete()
		r.basic = nil
	}
}
