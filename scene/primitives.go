package scene

import (
	"fmt"
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gpu"
)

// geometry accumulates separate vertex streams before upload.
type geometry struct {
	positions []float32
	normals   []float32
	coords    []float32
	colors    []float32
	indices   []uint16
}

func (g *geometry) vertex(p, n mgl32.Vec3, u, v float32) {
	g.positions = append(g.positions, p[0], p[1], p[2])
	g.normals = append(g.normals, n[0], n[1], n[2])
	g.coords = append(g.coords, u, v)
}

func (g *geometry) vertexCount() int { return len(g.positions) / 3 }

// build uploads the streams. Texture coordinates are kept only when tex is
// set, since a mesh with coordinates cannot draw without a texture.
func (g *geometry) build(dev *gpu.Device, mode RenderMode, tex *gpu.Texture) (*Mesh, error) {
	if g.vertexCount() > stdmath.MaxUint16+1 {
		return nil, fmt.Errorf("%d vertices exceed 16-bit indices", g.vertexCount())
	}

	m := NewMesh(dev, mode)
	if err := m.AddPositions(g.positions); err != nil {
		return nil, err
	}
	if len(g.colors) > 0 {
		if err := m.AddColors(g.colors); err != nil {
			return nil, err
		}
	}
	if len(g.normals) > 0 {
		if err := m.AddNormals(g.normals); err != nil {
			return nil, err
		}
	}
	if tex != nil && len(g.coords) > 0 {
		if err := m.AddTextureCoords(g.coords); err != nil {
			return nil, err
		}
		m.SetTexture(tex)
	}
	if len(g.indices) > 0 {
		if err := m.AddIndices(g.indices); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewAxis draws the X, Y and Z axes in red, green and blue.
func NewAxis(dev *gpu.Device, length float32) (*Mesh, error) {
	g := geometry{
		positions: []float32{
			0, 0, 0, length, 0, 0,
			0, 0, 0, 0, length, 0,
			0, 0, 0, 0, 0, length,
		},
		colors: []float32{
			1, 0, 0, 1, 1, 0, 0, 1,
			0, 1, 0, 1, 0, 1, 0, 1,
			0, 0, 1, 1, 0, 0, 1, 1,
		},
	}
	return g.build(dev, RenderLines, nil)
}

// NewCube builds a cube of the given edge length centred on the origin,
// with per-face normals. Each face maps the whole texture when tex is set.
func NewCube(dev *gpu.Device, size float32, tex *gpu.Texture) (*Mesh, error) {
	s := size / 2
	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
		uv      [4][2]float32
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}, [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-s, -s, -s}, {-s, s, -s}, {s, s, -s}, {s, -s, -s}}, [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-s, s, -s}, {-s, s, s}, {s, s, s}, {s, s, -s}}, [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}, [4][2]float32{{1, 1}, {0, 1}, {0, 0}, {1, 0}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{s, -s, -s}, {s, s, -s}, {s, s, s}, {s, -s, s}}, [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}, [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
	}

	var g geometry
	for i, f := range faces {
		for j, c := range f.corners {
			g.vertex(c, f.normal, f.uv[j][0], f.uv[j][1])
		}
		base := uint16(i * 4)
		g.indices = append(g.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g.build(dev, RenderTriangles, tex)
}

// NewSphere generates a UV sphere around the Z axis.
func NewSphere(dev *gpu.Device, radius float32, segments, rings int, tex *gpu.Texture) (*Mesh, error) {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var g geometry
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			normal := mgl32.Vec3{
				sinPhi * float32(stdmath.Cos(theta)),
				sinPhi * float32(stdmath.Sin(theta)),
				cosPhi,
			}
			g.vertex(normal.Mul(radius), normal, float32(seg)/float32(segments), 1-float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint16(ring*(segments+1) + seg)
			next := current + uint16(segments+1)
			g.indices = append(g.indices, current, next, current+1)
			g.indices = append(g.indices, current+1, next, next+1)
		}
	}
	return g.build(dev, RenderTriangles, tex)
}

// NewPlane builds a subdivided plane in the XY plane facing +Z.
func NewPlane(dev *gpu.Device, width, depth float32, subdivisions int, tex *gpu.Texture) (*Mesh, error) {
	if subdivisions < 1 {
		subdivisions = 1
	}
	halfW := width / 2
	halfD := depth / 2

	var g geometry
	for y := 0; y <= subdivisions; y++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(y) / float32(subdivisions)
			g.vertex(mgl32.Vec3{-halfW + u*width, -halfD + v*depth, 0}, mgl32.Vec3{0, 0, 1}, u, v)
		}
	}

	for y := 0; y < subdivisions; y++ {
		for x := 0; x < subdivisions; x++ {
			bottomLeft := uint16(y*(subdivisions+1) + x)
			bottomRight := bottomLeft + 1
			topLeft := bottomLeft + uint16(subdivisions+1)
			topRight := topLeft + 1
			g.indices = append(g.indices, bottomLeft, bottomRight, topRight)
			g.indices = append(g.indices, bottomLeft, topRight, topLeft)
		}
	}
	return g.build(dev, RenderTriangles, tex)
}
