package scene

import (
	"errors"
	"fmt"
	"time"

	"scenegl/core"
	"scenegl/gpu"
)

var (
	ErrMissingShader   = errors.New("missing shader for a mesh")
	ErrTextureMissing  = errors.New("trying to render a textured mesh without texture")
	ErrTextureUnloaded = errors.New("textured mesh uses a texture that was never loaded")
	ErrEmptyMesh       = errors.New("mesh has no positions")
)

// Attribute names fed by mesh buffers.
const (
	AttribPosition     = "aPosition"
	AttribColor        = "aColor"
	AttribTextureCoord = "aTextureCoord"
	AttribNormal       = "aNormal"
)

// RenderMode is the primitive type a mesh is drawn with.
type RenderMode gpu.Enum

const (
	RenderPoints        = RenderMode(gpu.Points)
	RenderLines         = RenderMode(gpu.Lines)
	RenderLineLoop      = RenderMode(gpu.LineLoop)
	RenderLineStrip     = RenderMode(gpu.LineStrip)
	RenderTriangles     = RenderMode(gpu.Triangles)
	RenderTriangleStrip = RenderMode(gpu.TriangleStrip)
	RenderTriangleFan   = RenderMode(gpu.TriangleFan)
)

// Mesh is drawable geometry: vertex buffers, optional indices, an optional
// texture and the shader program that draws it.
type Mesh struct {
	dev  *gpu.Device
	mode RenderMode

	buffers   []*gpu.Buffer
	indices   *gpu.Buffer
	itemCount int

	useColor        bool
	useTextureCoord bool
	useNormal       bool

	texture *gpu.Texture
	shader  *gpu.Program
}

func NewMesh(dev *gpu.Device, mode RenderMode) *Mesh {
	return &Mesh{dev: dev, mode: mode}
}

func (m *Mesh) Update(time.Duration) {}
func (m *Mesh) payload()             {}

func (m *Mesh) Mode() RenderMode { return m.mode }

// ItemCount is the number of vertices or indices a draw submits.
func (m *Mesh) ItemCount() int { return m.itemCount }

func (m *Mesh) UseColor() bool        { return m.useColor }
func (m *Mesh) UseTextureCoord() bool { return m.useTextureCoord }
func (m *Mesh) UseNormal() bool       { return m.useNormal }

func (m *Mesh) addBuffer(data []float32, itemSize int, attribute string) (*gpu.Buffer, error) {
	buf, err := m.dev.NewArrayBuffer(data, itemSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", attribute, err)
	}
	buf.LinkToAttribute(attribute)
	m.buffers = append(m.buffers, buf)
	return buf, nil
}

// AddPositions adds xyz positions.
func (m *Mesh) AddPositions(positions []float32) error {
	buf, err := m.addBuffer(positions, 3, AttribPosition)
	if err != nil {
		return err
	}
	if m.indices == nil {
		m.itemCount = buf.Count()
	}
	return nil
}

// AddColors adds rgba vertex colors.
func (m *Mesh) AddColors(colors []float32) error {
	if _, err := m.addBuffer(colors, 4, AttribColor); err != nil {
		return err
	}
	m.useColor = true
	return nil
}

// AddTextureCoords adds uv coordinates. The mesh then needs a texture.
func (m *Mesh) AddTextureCoords(coords []float32) error {
	if _, err := m.addBuffer(coords, 2, AttribTextureCoord); err != nil {
		return err
	}
	m.useTextureCoord = true
	return nil
}

func (m *Mesh) AddNormals(normals []float32) error {
	if _, err := m.addBuffer(normals, 3, AttribNormal); err != nil {
		return err
	}
	m.useNormal = true
	return nil
}

// AddIndices switches the mesh to indexed drawing.
func (m *Mesh) AddIndices(indices []uint16) error {
	buf, err := m.dev.NewElementBuffer(indices)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	if m.indices != nil {
		m.indices.Delete()
	}
	m.indices = buf
	m.itemCount = buf.Count()
	return nil
}

func (m *Mesh) SetTexture(t *gpu.Texture) { m.texture = t }
func (m *Mesh) Texture() *gpu.Texture     { return m.texture }
func (m *Mesh) SetShader(p *gpu.Program)  { m.shader = p }

func (m *Mesh) Shader() (*gpu.Program, error) {
	if m.shader == nil {
		return nil, ErrMissingShader
	}
	return m.shader, nil
}

// Draw submits the mesh through bp, which must be the mesh's program.
// A textured mesh whose texture is still loading is skipped without error.
func (m *Mesh) Draw(bp *gpu.BoundProgram) error {
	if len(m.buffers) == 0 || m.itemCount == 0 {
		return ErrEmptyMesh
	}
	if m.useTextureCoord {
		if m.texture == nil {
			return ErrTextureMissing
		}
		switch m.texture.State() {
		case gpu.TextureUnloaded:
			return fmt.Errorf("%w: %s", ErrTextureUnloaded, m.texture.Name())
		case gpu.TextureLoading:
			core.Logger().Debug("skipping mesh, texture loading", "texture", m.texture.Name())
			return nil
		case gpu.TextureFailed:
			return m.texture.Err()
		}
	}

	err := m.bind(bp)
	if err == nil {
		err = m.submit()
	}
	if uerr := m.unbind(bp); err == nil {
		err = uerr
	}
	return err
}

func (m *Mesh) bind(bp *gpu.BoundProgram) error {
	for _, buf := range m.buffers {
		if err := buf.Bind(bp); err != nil {
			return err
		}
	}
	if m.indices != nil {
		if err := m.indices.Bind(bp); err != nil {
			return err
		}
	}

	if err := bp.SetBool("uUseColor", m.useColor); err != nil {
		return err
	}
	if err := bp.SetBool("uUseTexture", m.useTextureCoord); err != nil {
		return err
	}
	if err := bp.SetBool("uUseNormal", m.useNormal); err != nil {
		return err
	}
	if m.useTextureCoord {
		if _, err := m.texture.Activate(0); err != nil {
			return err
		}
		if err := bp.SetInt("uTexture", 0); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) submit() error {
	ctx := m.dev.Context()
	count := int32(m.itemCount)
	if m.indices == nil {
		if err := m.dev.CheckError("drawArrays before"); err != nil {
			return err
		}
		ctx.DrawArrays(gpu.Enum(m.mode), 0, count)
		return m.dev.CheckError("drawArrays")
	}
	if err := m.dev.CheckError("drawElements before"); err != nil {
		return err
	}
	ctx.DrawElements(gpu.Enum(m.mode), count, gpu.UnsignedShort, 0)
	return m.dev.CheckError("drawElements")
}

func (m *Mesh) unbind(bp *gpu.BoundProgram) error {
	var first error
	for _, buf := range m.buffers {
		if err := buf.Unbind(bp); err != nil && first == nil {
			first = err
		}
	}
	if m.indices != nil {
		if err := m.indices.Unbind(bp); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Delete frees the mesh's buffers. Texture and shader are shared and left
// alone.
func (m *Mesh) Delete() {
	for _, buf := range m.buffers {
		buf.Delete()
	}
	m.buffers = nil
	if m.indices != nil {
		m.indices.Delete()
		m.indices = nil
	}
	m.itemCount = 0
}
