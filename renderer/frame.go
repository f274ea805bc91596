package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/math"
	"scenegl/scene"
)

// Uniforms the frame pass writes directly. Meshes and lights set the rest.
const (
	UniformModelMatrix       = "uModelMatrix"
	UniformViewMatrix        = "uViewMatrix"
	UniformPerspectiveMatrix = "uPerspectiveMatrix"
	UniformNormalMatrix      = "uNormalMatrix"
)

type drawItem struct {
	mesh  *scene.Mesh
	world mgl32.Mat4
}

// Bucket holds the meshes of one frame that share a shader program.
type Bucket struct {
	program *gpu.Program
	items   []drawItem
}

func (b *Bucket) Program() *gpu.Program { return b.program }
func (b *Bucket) Len() int              { return len(b.items) }

// Meshes returns the bucket's meshes in collection order.
func (b *Bucket) Meshes() []*scene.Mesh {
	out := make([]*scene.Mesh, len(b.items))
	for i, it := range b.items {
		out[i] = it.mesh
	}
	return out
}

// FrameRender gathers the visible payloads of one frame and draws them with
// one program bind per distinct shader.
type FrameRender struct {
	cameras []scene.Viewer
	lights  []scene.Light
	buckets []*Bucket
	index   map[*gpu.Program]*Bucket
}

func NewFrameRender() *FrameRender {
	return &FrameRender{index: make(map[*gpu.Program]*Bucket)}
}

var _ scene.Collector = (*FrameRender)(nil)

// Reset forgets everything collected for the previous frame.
func (f *FrameRender) Reset() {
	f.cameras = f.cameras[:0]
	f.lights = f.lights[:0]
	f.buckets = f.buckets[:0]
	clear(f.index)
}

// Add files a payload found at world. Meshes are grouped by shader.
func (f *FrameRender) Add(p scene.Payload, world mgl32.Mat4) error {
	switch v := p.(type) {
	case *scene.Mesh:
		shader, err := v.Shader()
		if err != nil {
			return err
		}
		b, ok := f.index[shader]
		if !ok {
			b = &Bucket{program: shader}
			f.index[shader] = b
			f.buckets = append(f.buckets, b)
		}
		b.items = append(b.items, drawItem{mesh: v, world: world})
	case scene.Light:
		f.lights = append(f.lights, v)
	case scene.Viewer:
		f.cameras = append(f.cameras, v)
	default:
		return fmt.Errorf("unsupported payload %T", p)
	}
	return nil
}

func (f *FrameRender) Buckets() []*Bucket      { return f.buckets }
func (f *FrameRender) Lights() []scene.Light   { return f.lights }
func (f *FrameRender) Cameras() []scene.Viewer { return f.cameras }

// Render draws the collected frame as seen by camera. The skybox, when set,
// is drawn first and leaves only its colors behind.
func (f *FrameRender) Render(dev *gpu.Device, camera *scene.Camera, skybox *scene.Skybox) error {
	view, err := camera.View()
	if err != nil {
		return fmt.Errorf("view matrix: %w", err)
	}
	perspective := camera.Perspective()

	if skybox != nil {
		if err := f.renderSkybox(dev, camera, skybox, view, perspective); err != nil {
			return fmt.Errorf("skybox: %w", err)
		}
	}

	for _, b := range f.buckets {
		if err := f.renderBucket(b, view, perspective); err != nil {
			return fmt.Errorf("program %s: %w", b.program.Name(), err)
		}
	}
	core.Logger().Debug("frame rendered", "buckets", len(f.buckets), "lights", len(f.lights))
	return nil
}

func (f *FrameRender) renderSkybox(dev *gpu.Device, camera *scene.Camera, skybox *scene.Skybox, view, perspective mgl32.Mat4) error {
	shader, err := skybox.Shader()
	if err != nil {
		return err
	}
	bp := shader.Bind()
	skybox.CenterToCamera(camera)
	if err := setMatrices(bp, view, perspective); err != nil {
		return err
	}
	if err := bp.SetMatrix4(UniformModelMatrix, skybox.ModelMatrix()); err != nil {
		return err
	}

	ctx := dev.Context()
	culling := ctx.IsEnabled(gpu.CullFace)
	if culling {
		ctx.Disable(gpu.CullFace)
	}
	err = skybox.Draw(bp)
	if culling {
		ctx.Enable(gpu.CullFace)
	}
	if err != nil {
		return err
	}
	ctx.Clear(gpu.DepthBufferBit)
	return nil
}

func (f *FrameRender) renderBucket(b *Bucket, view, perspective mgl32.Mat4) error {
	bp := b.program.Bind()
	if err := setMatrices(bp, view, perspective); err != nil {
		return err
	}
	for _, l := range f.lights {
		if err := l.Upload(bp); err != nil {
			return fmt.Errorf("light %s: %w", l.AsLightBase().Name, err)
		}
	}

	for _, it := range b.items {
		normal, err := math.NormalMatrix(it.world)
		if err != nil {
			return err
		}
		if err := bp.SetMatrix4(UniformModelMatrix, it.world); err != nil {
			return err
		}
		if err := bp.SetMatrix3(UniformNormalMatrix, normal); err != nil {
			return err
		}
		if err := it.mesh.Draw(bp); err != nil {
			return err
		}
	}
	return nil
}

func setMatrices(bp *gpu.BoundProgram, view, perspective mgl32.Mat4) error {
	if err := bp.SetMatrix4(UniformViewMatrix, view); err != nil {
		return err
	}
	return bp.SetMatrix4(UniformPerspectiveMatrix, perspective)
}
