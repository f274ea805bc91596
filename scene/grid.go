package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gpu"
)

var (
	gridColor = core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	gridXAxis = core.Color{R: 0.8, G: 0.15, B: 0.15, A: 1}
	gridYAxis = core.Color{R: 0.15, G: 0.8, B: 0.15, A: 1}
)

func (g *geometry) line(a, b mgl32.Vec3, c core.Color) {
	base := uint16(g.vertexCount())
	g.positions = append(g.positions, a[0], a[1], a[2], b[0], b[1], b[2])
	g.colors = append(g.colors, c.R, c.G, c.B, c.A, c.R, c.G, c.B, c.A)
	g.indices = append(g.indices, base, base+1)
}

// NewGrid builds a flat line grid in the XY plane spanning -size/2 to
// size/2 with divisions cells per side. The centre lines take the axis
// colors when divisions is even.
func NewGrid(dev *gpu.Device, size float32, divisions int) (*Mesh, error) {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)

	var g geometry
	for i := 0; i <= divisions; i++ {
		x := -half + float32(i)*step
		c := gridColor
		if divisions%2 == 0 && i == divisions/2 {
			c = gridYAxis
		}
		g.line(mgl32.Vec3{x, -half, 0}, mgl32.Vec3{x, half, 0}, c)
	}
	for i := 0; i <= divisions; i++ {
		y := -half + float32(i)*step
		c := gridColor
		if divisions%2 == 0 && i == divisions/2 {
			c = gridXAxis
		}
		g.line(mgl32.Vec3{-half, y, 0}, mgl32.Vec3{half, y, 0}, c)
	}
	return g.build(dev, RenderLines, nil)
}

// NewWireBox builds the twelve edges of the cube with corners at ±1. Scale
// and translate its node to outline any box.
func NewWireBox(dev *gpu.Device, color core.Color) (*Mesh, error) {
	var corners [8]mgl32.Vec3
	for i := range corners {
		corners[i] = mgl32.Vec3{-1, -1, -1}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = 1
			}
		}
	}

	var g geometry
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if j := i | 1<<axis; j != i {
				g.line(corners[i], corners[j], color)
			}
		}
	}
	return g.build(dev, RenderLines, nil)
}
