package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/input"
	"scenegl/math"
)

// TrackballCamera orbits Target at Distance. Dragging with the left button
// (or with the pointer locked) spins it, the wheel zooms and a left click
// stops the spin.
type TrackballCamera struct {
	Camera

	Distance float32
	// RotationSpeed is in radians per millisecond per pixel dragged.
	RotationSpeed float32
	ZoomSpeed     float32
	Inertia       float32

	Input *input.Handler

	angleX float32
	angleY float32
	move   mgl32.Vec2
	mouse  *input.Mouse
}

func NewTrackballCamera(events *input.Manager) *TrackballCamera {
	if events == nil {
		events = input.NewManager()
	}
	c := &TrackballCamera{
		Camera:        defaultCamera(),
		Distance:      10,
		RotationSpeed: 0.0001,
		ZoomSpeed:     0.1,
		Inertia:       0.95,
		Input:         input.NewHandler(),
		mouse:         events.Mouse(),
	}
	c.recalc()

	c.Input.OnButtonPress(input.MouseLeft, func(x, y float32) { c.move = mgl32.Vec2{} })
	c.Input.OnMouseMove(c.turn)
	c.Input.OnWheel(func(dx, dy float32) { c.zoom(dy) })
	events.AddHandler(c.Input)
	return c
}

// NewTrackballCameraFrom keeps src's placement; the orbit distance is taken
// from the current position.
func NewTrackballCameraFrom(events *input.Manager, src Viewer) *TrackballCamera {
	c := NewTrackballCamera(events)
	src.AsCamera().CopyTo(&c.Camera)
	if a, ok := src.(angled); ok {
		c.angleX, c.angleY = a.Angles()
	}
	c.FixDistanceToCurrent()
	c.recalc()
	return c
}

func (c *TrackballCamera) Angles() (float32, float32) { return c.angleX, c.angleY }

// SetAngles turns the camera to yaw and pitch, clamping the pitch.
func (c *TrackballCamera) SetAngles(yaw, pitch float32) {
	c.angleX = yaw
	c.angleY = math.ClampPitch(pitch)
	c.recalc()
}

// FixDistanceToCurrent sets Distance to the current position-target gap.
func (c *TrackballCamera) FixDistanceToCurrent() {
	c.Distance = c.Position.Sub(c.Target).Len()
}

func (c *TrackballCamera) Update(elapsed time.Duration) {
	ms := milliseconds(elapsed)
	c.angleX += c.move.X() * ms
	c.angleY = math.ClampPitch(c.angleY + c.move.Y()*ms)
	c.recalc()
}

func (c *TrackballCamera) turn(dx, dy float32) {
	if !c.mouse.Locked() && !c.mouse.IsPressed(input.MouseLeft) {
		return
	}
	c.move[0] += dx * c.RotationSpeed
	c.move[1] -= dy * c.RotationSpeed
}

// zoom scales the distance by ZoomSpeed once per wheel tick; a partial
// tick counts as a whole one.
func (c *TrackballCamera) zoom(dy float32) {
	if dy > 0 {
		for ; dy > 0; dy-- {
			c.Distance += c.Distance * c.ZoomSpeed
		}
		return
	}
	for ; dy < 0; dy++ {
		c.Distance -= c.Distance * c.ZoomSpeed
	}
}

func (c *TrackballCamera) recalc() {
	c.Position = c.Target.Add(math.Direction(c.angleX, c.angleY).Mul(c.Distance))
	c.move = c.move.Mul(c.Inertia)
}
