//go:build js && wasm

package webgl

import (
	"syscall/js"

	"scenegl/input"
)

// Canvas is a browser canvas used as an app.Surface. It forwards DOM input
// events to an input.Manager and paces frames with requestAnimationFrame.
type Canvas struct {
	el     js.Value
	events *input.Manager
	funcs  []js.Func
	closed bool
}

// NewCanvas looks up the canvas element with the given id.
func NewCanvas(id string, events *input.Manager) (*Canvas, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, ErrNoWebGL
	}
	c := &Canvas{el: el, events: events}
	events.RequestPointerLock = func() { el.Call("requestPointerLock") }
	c.listen()
	return c, nil
}

func (c *Canvas) Element() js.Value { return c.el }

func (c *Canvas) on(target js.Value, event string, fn func(e js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	c.funcs = append(c.funcs, f)
	target.Call("addEventListener", event, f)
}

func (c *Canvas) listen() {
	doc := js.Global().Get("document")
	c.on(doc, "keydown", func(e js.Value) {
		if !e.Get("repeat").Bool() {
			c.events.KeyDown(input.Key(e.Get("keyCode").Int()))
		}
	})
	c.on(doc, "keyup", func(e js.Value) {
		c.events.KeyUp(input.Key(e.Get("keyCode").Int()))
	})
	c.on(c.el, "mousedown", func(e js.Value) {
		x, y := c.position(e)
		c.events.ButtonDown(input.MouseButton(e.Get("button").Int()), x, y)
		e.Call("preventDefault")
	})
	c.on(doc, "mouseup", func(e js.Value) {
		x, y := c.position(e)
		c.events.ButtonUp(input.MouseButton(e.Get("button").Int()), x, y)
	})
	c.on(doc, "mousemove", func(e js.Value) {
		c.events.MouseMove(float32(e.Get("movementX").Float()), float32(e.Get("movementY").Float()))
	})
	c.on(c.el, "wheel", func(e js.Value) {
		c.events.Wheel(wheelTicks(e.Get("deltaX").Float(), e.Get("deltaMode").Int()),
			wheelTicks(e.Get("deltaY").Float(), e.Get("deltaMode").Int()))
		e.Call("preventDefault")
	})
	c.on(c.el, "contextmenu", func(e js.Value) { e.Call("preventDefault") })
	c.on(doc, "pointerlockchange", func(js.Value) {
		c.events.SetPointerLocked(doc.Get("pointerLockElement").Equal(c.el))
	})
}

func (c *Canvas) position(e js.Value) (float32, float32) {
	rect := c.el.Call("getBoundingClientRect")
	return float32(e.Get("clientX").Float() - rect.Get("left").Float()),
		float32(e.Get("clientY").Float() - rect.Get("top").Float())
}

// wheelTicks converts a DOM wheel delta to notches, positive when scrolling
// down.
func wheelTicks(delta float64, mode int) float32 {
	switch mode {
	case 0: // pixels
		return float32(delta / 100)
	case 1: // lines
		return float32(delta / 3)
	}
	return float32(delta)
}

// Close stops the render loop and removes the listeners.
func (c *Canvas) Close() {
	c.closed = true
	for _, f := range c.funcs {
		f.Release()
	}
	c.funcs = nil
}

func (c *Canvas) ShouldClose() bool { return c.closed }

// PollEvents is a no-op: DOM events are delivered while SwapBuffers waits.
func (c *Canvas) PollEvents() {}

// SwapBuffers yields to the browser until the next animation frame.
func (c *Canvas) SwapBuffers() {
	done := make(chan struct{})
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		close(done)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
	<-done
	cb.Release()
}

// Size keeps the drawing buffer in step with the element's CSS size.
func (c *Canvas) Size() (int, int) {
	w, h := c.el.Get("clientWidth").Int(), c.el.Get("clientHeight").Int()
	if c.el.Get("width").Int() != w || c.el.Get("height").Int() != h {
		c.el.Set("width", w)
		c.el.Set("height", h)
	}
	return w, h
}
