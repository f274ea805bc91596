package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gpu"
	"scenegl/math"
)

// Skybox is a large textured cube drawn around the camera before the scene.
// Its texture uses a horizontal cross layout: four side faces in the middle
// row, top and bottom above and below the second one.
type Skybox struct {
	mesh  *Mesh
	model mgl32.Mat4
}

var skyboxPositions = []float32{
	// +Y
	-10, 10, -10, 10, 10, -10, 10, 10, 10, -10, 10, 10,
	// -Y
	-10, -10, -10, -10, -10, 10, 10, -10, 10, 10, -10, -10,
	// +Z
	-10, -10, 10, -10, 10, 10, 10, 10, 10, 10, -10, 10,
	// -Z
	-10, -10, -10, 10, -10, -10, 10, 10, -10, -10, 10, -10,
	// +X
	10, -10, -10, 10, -10, 10, 10, 10, 10, 10, 10, -10,
	// -X
	-10, -10, -10, -10, 10, -10, -10, 10, 10, -10, -10, 10,
}

var skyboxCoords = []float32{
	1.0 / 4, 2.0 / 4, 2.0 / 4, 2.0 / 4, 2.0 / 4, 3.0 / 4, 1.0 / 4, 3.0 / 4,
	4.0 / 4, 2.0 / 4, 4.0 / 4, 3.0 / 4, 3.0 / 4, 3.0 / 4, 3.0 / 4, 2.0 / 4,
	1.0 / 4, 4.0 / 4, 1.0 / 4, 3.0 / 4, 2.0 / 4, 3.0 / 4, 2.0 / 4, 4.0 / 4,
	1.0 / 4, 1.0 / 4, 2.0 / 4, 1.0 / 4, 2.0 / 4, 2.0 / 4, 1.0 / 4, 2.0 / 4,
	3.0 / 4, 2.0 / 4, 3.0 / 4, 3.0 / 4, 2.0 / 4, 3.0 / 4, 2.0 / 4, 2.0 / 4,
	0.0 / 4, 2.0 / 4, 1.0 / 4, 2.0 / 4, 1.0 / 4, 3.0 / 4, 0.0 / 4, 3.0 / 4,
}

var skyboxIndices = []uint16{
	0, 1, 2, 0, 2, 3,
	4, 5, 6, 4, 6, 7,
	8, 9, 10, 8, 10, 11,
	12, 13, 14, 12, 14, 15,
	16, 17, 18, 16, 18, 19,
	20, 21, 22, 20, 22, 23,
}

// NewSkybox builds the cube, textured with texture and drawn with shader.
func NewSkybox(dev *gpu.Device, texture *gpu.Texture, shader *gpu.Program) (*Skybox, error) {
	m := NewMesh(dev, RenderTriangles)
	if err := m.AddPositions(skyboxPositions); err != nil {
		return nil, err
	}
	if err := m.AddTextureCoords(skyboxCoords); err != nil {
		return nil, err
	}
	if err := m.AddIndices(skyboxIndices); err != nil {
		return nil, err
	}
	m.SetTexture(texture)
	m.SetShader(shader)
	return &Skybox{mesh: m, model: mgl32.Ident4()}, nil
}

// CenterToCamera moves the box onto the camera, without rotating it.
func (s *Skybox) CenterToCamera(c *Camera) {
	s.model = math.Translation(c.Position)
}

func (s *Skybox) ModelMatrix() mgl32.Mat4 { return s.model }
func (s *Skybox) Mesh() *Mesh             { return s.mesh }

func (s *Skybox) Shader() (*gpu.Program, error) { return s.mesh.Shader() }

func (s *Skybox) Draw(bp *gpu.BoundProgram) error { return s.mesh.Draw(bp) }

func (s *Skybox) Delete() { s.mesh.Delete() }
