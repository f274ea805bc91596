package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/math"
)

// Camera is a static perspective camera looking from Position at Target.
// View and projection matrices are rebuilt on every request.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	// Angle is the vertical field of view in degrees.
	Angle       float32
	AspectRatio float32
	MinRange    float32
	MaxRange    float32
}

// Viewer is any camera payload the renderer can look through.
type Viewer interface {
	Payload
	AsCamera() *Camera
}

func defaultCamera() Camera {
	return Camera{
		Position:    mgl32.Vec3{-10, 0, 0},
		Up:          mgl32.Vec3{0, 0, 1},
		Angle:       60,
		AspectRatio: 4.0 / 3.0,
		MinRange:    0.1,
		MaxRange:    100,
	}
}

func NewCamera() *Camera {
	c := defaultCamera()
	return &c
}

func (c *Camera) AsCamera() *Camera    { return c }
func (c *Camera) Update(time.Duration) {}
func (c *Camera) payload()             {}

// View fails with math.ErrDegenerateLookAt when Position equals Target.
func (c *Camera) View() (mgl32.Mat4, error) {
	return math.LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) Perspective() mgl32.Mat4 {
	return math.Perspective(c.Angle, c.AspectRatio, c.MinRange, c.MaxRange)
}

// SetAspectRatio updates the ratio from a viewport size, ignoring empty
// viewports.
func (c *Camera) SetAspectRatio(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// CopyTo copies placement and projection parameters into dst.
func (c *Camera) CopyTo(dst *Camera) { *dst = *c }

// angled is implemented by cameras steered by a yaw and a pitch.
type angled interface {
	Angles() (yaw, pitch float32)
}
