// Package demo assembles the showcase scene shared by the desktop and
// browser hosts.
package demo

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/input"
	"scenegl/math"
	"scenegl/renderer"
	"scenegl/scene"
)

// SceneName is the name the showcase is registered under.
const SceneName = "showcase"

// NewCamera builds the camera described by cfg. Interactive cameras register
// their listeners with events.
func NewCamera(cfg core.CameraConfig, events *input.Manager) (scene.Viewer, error) {
	base := scene.NewCamera()
	base.Position = mgl32.Vec3(cfg.Position)
	base.Target = mgl32.Vec3(cfg.Target)
	base.Up = mgl32.Vec3(cfg.Up)
	base.Angle = cfg.Angle
	base.MinRange = cfg.Near
	base.MaxRange = cfg.Far
	facing := base.Position.Sub(base.Target)

	switch cfg.Kind {
	case core.CameraStatic:
		return base, nil
	case core.CameraFreeFly:
		c := scene.NewFreeFlyCameraFrom(events, base)
		if cfg.Speed > 0 {
			c.Speed = cfg.Speed
		}
		if cfg.Sensitivity > 0 {
			c.Sensitivity = cfg.Sensitivity
		}
		if facing.Len() > 0 {
			c.SetAngles(math.Angles(facing))
		}
		return c, nil
	case core.CameraTrackball:
		c := scene.NewTrackballCameraFrom(events, base)
		if cfg.Distance > 0 {
			c.Distance = cfg.Distance
		}
		if facing.Len() > 0 {
			c.SetAngles(math.Angles(facing))
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown camera kind %q", cfg.Kind)
}

// Build populates a scene with primitives, the three light kinds and the
// configured camera. Textures named in cfg.Assets start loading in the
// background; meshes using them are skipped until they are ready.
func Build(ctx context.Context, cfg core.Config, r *renderer.Renderer, events *input.Manager) (*scene.Scene, error) {
	if events == nil {
		events = input.NewManager()
	}
	events.WantPointerLock = cfg.Camera.LockPointer

	dev := r.Device()
	basic := r.BasicProgram()
	s := scene.NewScene()

	var cubeTexture *gpu.Texture
	if cfg.Assets.CubeTexture != "" {
		cubeTexture = dev.NewTexture("cube")
		if err := cubeTexture.Load(ctx, cfg.Assets.CubeTexture); err != nil {
			return nil, err
		}
	}

	meshes := []struct {
		name  string
		build func() (*scene.Mesh, error)
		place func(*scene.Node)
	}{
		{"axis", func() (*scene.Mesh, error) { return scene.NewAxis(dev, 2) }, nil},
		{"cube", func() (*scene.Mesh, error) { return scene.NewCube(dev, 1, cubeTexture) }, func(n *scene.Node) {
			n.Translate(0, 2, 0.5)
			n.RotateZ(mgl32.DegToRad(30))
		}},
		{"sphere", func() (*scene.Mesh, error) { return scene.NewSphere(dev, 0.75, 32, 16, nil) }, func(n *scene.Node) {
			n.Translate(0, -2, 0.75)
		}},
		{"ground", func() (*scene.Mesh, error) { return scene.NewPlane(dev, 10, 10, 4, nil) }, nil},
		{"grid", func() (*scene.Mesh, error) { return scene.NewGrid(dev, 10, 10) }, func(n *scene.Node) {
			n.Translate(0, 0, 0.01)
		}},
	}
	for _, m := range meshes {
		mesh, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		mesh.SetShader(basic)
		node := scene.NewNamedNode(m.name, mesh)
		if m.place != nil {
			m.place(node)
		}
		if err := s.AddNode(node); err != nil {
			return nil, err
		}
	}

	lights := []*scene.Node{
		scene.NewNamedNode("ambient", scene.NewAmbientLight(core.NewColor(0.2, 0.2, 0.2, 1))),
		scene.NewNamedNode("sun", scene.NewDirectionalLight(core.NewColor(0.6, 0.6, 0.5, 1), mgl32.Vec3{1, 1, -2})),
		scene.NewNamedNode("lamp", scene.NewSpotLight(core.NewColor(1, 0.8, 0.6, 1), mgl32.Vec3{-2, 0, 3})),
	}
	for _, n := range lights {
		if err := s.AddNode(n); err != nil {
			return nil, err
		}
	}

	camera, err := NewCamera(cfg.Camera, events)
	if err != nil {
		return nil, err
	}
	if err := s.AddNode(scene.NewNamedNode("camera", camera)); err != nil {
		return nil, err
	}
	s.SetActiveCamera(camera)

	if cfg.Assets.Skybox != "" {
		tex := dev.NewTexture("skybox")
		if err := tex.Load(ctx, cfg.Assets.Skybox); err != nil {
			return nil, err
		}
		sb, err := scene.NewSkybox(dev, tex, basic)
		if err != nil {
			return nil, fmt.Errorf("skybox: %w", err)
		}
		s.SetSkybox(sb)
	}

	core.Logger().Debug("showcase built", "camera", cfg.Camera.Kind, "skybox", cfg.Assets.Skybox != "")
	return s, nil
}
