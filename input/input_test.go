package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeldKeysFireEveryDispatch(t *testing.T) {
	m := NewManager()
	h := NewHandler()
	m.AddHandler(h)

	var held, pressed, released int
	h.OnKey(KeyW, func() { held++ })
	h.OnKeyPress(KeyW, func() { pressed++ })
	h.OnKeyRelease(KeyW, func() { released++ })

	m.KeyDown(KeyW)
	m.KeyDown(KeyW) // key repeat
	assert.True(t, m.Keyboard().IsPressed(KeyW))
	assert.Equal(t, []Key{KeyW}, m.Keyboard().Pressed())

	m.DispatchHeld()
	m.DispatchHeld()
	assert.Equal(t, 2, held)
	assert.Equal(t, 2, pressed)

	m.KeyUp(KeyW)
	m.DispatchHeld()
	assert.Equal(t, 2, held)
	assert.Equal(t, 1, released)
	assert.False(t, m.Keyboard().IsPressed(KeyW))
}

func TestMouseMoveIsNegated(t *testing.T) {
	m := NewManager()
	h := NewHandler()
	m.AddHandler(h)

	var gotX, gotY float32
	h.OnMouseMove(func(dx, dy float32) { gotX, gotY = dx, dy })

	m.MouseMove(3, -4)
	assert.Equal(t, float32(-3), gotX)
	assert.Equal(t, float32(4), gotY)
}

func TestButtonsAndPointerLock(t *testing.T) {
	m := NewManager()
	h := NewHandler()
	m.AddHandler(h)
	m.WantPointerLock = true

	requests := 0
	m.RequestPointerLock = func() { requests++ }

	var pressX, pressY float32
	held := 0
	h.OnButtonPress(MouseLeft, func(x, y float32) { pressX, pressY = x, y })
	h.OnButton(MouseLeft, func(x, y float32) { held++ })

	m.ButtonDown(MouseLeft, 10, 20)
	assert.True(t, m.Mouse().IsPressed(MouseLeft))
	assert.True(t, m.Mouse().Locked())
	assert.Equal(t, float32(10), pressX)
	assert.Equal(t, float32(20), pressY)

	m.ButtonDown(MouseRight, 10, 20)
	assert.Equal(t, 1, requests, "lock requested once")

	m.DispatchHeld()
	assert.Equal(t, 1, held)

	m.ButtonUp(MouseLeft, 0, 0)
	assert.False(t, m.Mouse().IsPressed(MouseLeft))
	assert.True(t, m.Mouse().IsPressed(MouseRight))

	m.SetPointerLocked(false)
	assert.False(t, m.Mouse().Locked())
}

func TestWheelAndHandlerRemoval(t *testing.T) {
	m := NewManager()
	h := NewHandler()
	m.AddHandler(h)
	m.AddHandler(h)

	calls := 0
	h.OnWheel(func(dx, dy float32) { calls++ })

	m.Wheel(0, 1)
	assert.Equal(t, 1, calls, "duplicate registration ignored")

	assert.True(t, m.RemoveHandler(h))
	assert.False(t, m.RemoveHandler(h))
	m.Wheel(0, 1)
	assert.Equal(t, 1, calls)
}
