package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/input"
	"scenegl/math"
)

// FreeFlyCamera moves with W/A/S/D and turns with the mouse while the
// pointer is locked or the left button is held. Movement keeps momentum
// and decays by Inertia every update.
type FreeFlyCamera struct {
	Camera

	// Speed is in world units per millisecond.
	Speed       float32
	Sensitivity float32
	Inertia     float32

	// Input holds the listeners registered with the input manager.
	Input *input.Handler

	angleX  float32
	angleY  float32
	forward mgl32.Vec3
	left    mgl32.Vec3
	move    mgl32.Vec3
	mouse   *input.Mouse
}

// NewFreeFlyCamera registers the camera's listeners with events.
func NewFreeFlyCamera(events *input.Manager) *FreeFlyCamera {
	if events == nil {
		events = input.NewManager()
	}
	c := &FreeFlyCamera{
		Camera:      defaultCamera(),
		Speed:       0.01,
		Sensitivity: 0.005,
		Inertia:     0.95,
		Input:       input.NewHandler(),
		mouse:       events.Mouse(),
	}
	c.recalc()

	c.Input.OnKey(input.KeyW, func() { c.move = c.move.Sub(c.forward) })
	c.Input.OnKey(input.KeyS, func() { c.move = c.move.Add(c.forward) })
	c.Input.OnKey(input.KeyD, func() { c.move = c.move.Sub(c.left) })
	c.Input.OnKey(input.KeyA, func() { c.move = c.move.Add(c.left) })
	c.Input.OnMouseMove(c.turn)
	events.AddHandler(c.Input)
	return c
}

// NewFreeFlyCameraFrom continues from src's placement and, when src is
// steered by angles too, its orientation.
func NewFreeFlyCameraFrom(events *input.Manager, src Viewer) *FreeFlyCamera {
	c := NewFreeFlyCamera(events)
	src.AsCamera().CopyTo(&c.Camera)
	if a, ok := src.(angled); ok {
		c.angleX, c.angleY = a.Angles()
	}
	c.recalc()
	return c
}

func (c *FreeFlyCamera) Angles() (float32, float32) { return c.angleX, c.angleY }

// SetAngles turns the camera to yaw and pitch, clamping the pitch.
func (c *FreeFlyCamera) SetAngles(yaw, pitch float32) {
	c.angleX = yaw
	c.angleY = math.ClampPitch(pitch)
	c.recalc()
}

// Velocity returns the pending movement, before speed scaling.
func (c *FreeFlyCamera) Velocity() mgl32.Vec3 { return c.move }

func (c *FreeFlyCamera) Update(elapsed time.Duration) {
	scale := c.Speed * milliseconds(elapsed)
	c.Position = c.Position.Add(c.move.Mul(scale))
	c.move = c.move.Mul(c.Inertia)
	c.recalc()
}

func (c *FreeFlyCamera) turn(dx, dy float32) {
	if !c.mouse.Locked() && !c.mouse.IsPressed(input.MouseLeft) {
		return
	}
	c.angleX += dx * c.Sensitivity
	c.angleY = math.ClampPitch(c.angleY - dy*c.Sensitivity)
}

func (c *FreeFlyCamera) recalc() {
	c.forward = math.Direction(c.angleX, c.angleY)
	c.left = c.forward.Cross(c.Up).Normalize()
	c.Target = c.Position.Sub(c.forward)
}
