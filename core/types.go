package core

import "github.com/go-gl/mathgl/mgl32"

type Color struct {
	R float32 `toml:"r" yaml:"r"`
	G float32 `toml:"g" yaml:"g"`
	B float32 `toml:"b" yaml:"b"`
	A float32 `toml:"a" yaml:"a"`
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB drops the alpha channel.
func (c Color) RGB() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

func (c Color) RGBA() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}
