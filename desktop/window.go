// Package desktop hosts the renderer in a GLFW window with an OpenGL 4.1
// core context.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"scenegl/core"
	"scenegl/input"
)

func init() {
	runtime.LockOSThread()
}

// Window is a GLFW window implementing app.Surface. Its callbacks feed an
// input.Manager.
type Window struct {
	Handle *glfw.Window
	Title  string

	events       *input.Manager
	cursorX      float64
	cursorY      float64
	cursorPlaced bool
}

func NewWindow(config core.WindowConfig, events *input.Manager) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{Handle: handle, Title: config.Title, events: events}
	events.RequestPointerLock = func() {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}
	w.bindInput()

	core.Logger().Info("window created", "width", config.Width, "height", config.Height)
	return w, nil
}

func (w *Window) ShouldClose() bool { return w.Handle.ShouldClose() }

func (w *Window) PollEvents() { glfw.PollEvents() }

func (w *Window) SwapBuffers() { w.Handle.SwapBuffers() }

// Size returns the framebuffer size, which differs from the window size on
// high-DPI screens.
func (w *Window) Size() (int, int) { return w.Handle.GetFramebufferSize() }

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// ── Input bridge ──────────────────────────────────────────────────────────────

func (w *Window) bindInput() {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := keyFromGLFW(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			if k == input.KeyEscape && w.events.Mouse().Locked() {
				w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
				w.events.SetPointerLocked(false)
			}
			w.events.KeyDown(k)
		case glfw.Release:
			w.events.KeyUp(k)
		}
	})

	w.Handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := buttonFromGLFW(button)
		if !ok {
			return
		}
		x, y := w.Handle.GetCursorPos()
		switch action {
		case glfw.Press:
			w.events.ButtonDown(b, float32(x), float32(y))
		case glfw.Release:
			w.events.ButtonUp(b, float32(x), float32(y))
		}
	})

	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if !w.cursorPlaced {
			w.cursorX, w.cursorY = x, y
			w.cursorPlaced = true
			return
		}
		dx, dy := x-w.cursorX, y-w.cursorY
		w.cursorX, w.cursorY = x, y
		w.events.MouseMove(float32(dx), float32(dy))
	})

	// GLFW reports scrolling up as positive; the input manager uses the
	// browser convention.
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.events.Wheel(float32(-xoff), float32(-yoff))
	})
}

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyBackspace:    input.KeyBackspace,
	glfw.KeyTab:          input.KeyTab,
	glfw.KeyEnter:        input.KeyEnter,
	glfw.KeyLeftShift:    input.KeyShift,
	glfw.KeyRightShift:   input.KeyShift,
	glfw.KeyLeftControl:  input.KeyControl,
	glfw.KeyRightControl: input.KeyControl,
	glfw.KeyLeftAlt:      input.KeyAlt,
	glfw.KeyRightAlt:     input.KeyAlt,
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeyLeft:         input.KeyLeft,
	glfw.KeyUp:           input.KeyUp,
	glfw.KeyRight:        input.KeyRight,
	glfw.KeyDown:         input.KeyDown,
}

// keyFromGLFW maps a GLFW key to its DOM keyCode. Space, digits and letters
// share their values.
func keyFromGLFW(k glfw.Key) (input.Key, bool) {
	switch {
	case k == glfw.KeySpace,
		k >= glfw.Key0 && k <= glfw.Key9,
		k >= glfw.KeyA && k <= glfw.KeyZ:
		return input.Key(k), true
	}
	key, ok := glfwKeys[k]
	return key, ok
}

func buttonFromGLFW(b glfw.MouseButton) (input.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft, true
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle, true
	case glfw.MouseButtonRight:
		return input.MouseRight, true
	}
	return 0, false
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
