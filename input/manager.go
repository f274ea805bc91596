package input

import "slices"

// Keyboard tracks held keys in press order.
type Keyboard struct {
	pressed []Key
}

func (k *Keyboard) IsPressed(key Key) bool { return slices.Contains(k.pressed, key) }

// Pressed returns the held keys, oldest first.
func (k *Keyboard) Pressed() []Key { return slices.Clone(k.pressed) }

// Mouse tracks held buttons, the last known cursor position and pointer
// lock.
type Mouse struct {
	pressed []MouseButton
	x, y    float32
	locked  bool
}

func (m *Mouse) IsPressed(b MouseButton) bool { return slices.Contains(m.pressed, b) }
func (m *Mouse) Position() (float32, float32) { return m.x, m.y }
func (m *Mouse) Locked() bool                 { return m.locked }

// Manager turns raw host events into listener calls on every registered
// Handler. It is not safe for concurrent use; hosts deliver events on the
// render goroutine.
type Manager struct {
	handlers []*Handler
	keyboard Keyboard
	mouse    Mouse

	// WantPointerLock asks for pointer lock on the next button press.
	WantPointerLock bool
	// RequestPointerLock is called by the Manager when it wants the host to
	// lock the pointer.
	RequestPointerLock func()
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Keyboard() *Keyboard { return &m.keyboard }
func (m *Manager) Mouse() *Mouse       { return &m.mouse }

func (m *Manager) AddHandler(h *Handler) {
	if h == nil || slices.Contains(m.handlers, h) {
		return
	}
	m.handlers = append(m.handlers, h)
}

// RemoveHandler reports whether h was registered.
func (m *Manager) RemoveHandler(h *Handler) bool {
	i := slices.Index(m.handlers, h)
	if i < 0 {
		return false
	}
	m.handlers = slices.Delete(m.handlers, i, i+1)
	return true
}

func (m *Manager) KeyDown(k Key) {
	if !m.keyboard.IsPressed(k) {
		m.keyboard.pressed = append(m.keyboard.pressed, k)
	}
	for _, h := range m.handlers {
		fireKey(h.keyPress, k)
	}
}

func (m *Manager) KeyUp(k Key) {
	if i := slices.Index(m.keyboard.pressed, k); i >= 0 {
		m.keyboard.pressed = slices.Delete(m.keyboard.pressed, i, i+1)
	}
	for _, h := range m.handlers {
		fireKey(h.keyRelease, k)
	}
}

func (m *Manager) ButtonDown(b MouseButton, x, y float32) {
	m.mouse.x, m.mouse.y = x, y
	if !m.mouse.IsPressed(b) {
		m.mouse.pressed = append(m.mouse.pressed, b)
	}
	if m.WantPointerLock && !m.mouse.locked {
		if m.RequestPointerLock != nil {
			m.RequestPointerLock()
		}
		m.mouse.locked = true
	}
	for _, h := range m.handlers {
		fireButton(h.buttonPress, b, x, y)
	}
}

func (m *Manager) ButtonUp(b MouseButton, x, y float32) {
	m.mouse.x, m.mouse.y = x, y
	if i := slices.Index(m.mouse.pressed, b); i >= 0 {
		m.mouse.pressed = slices.Delete(m.mouse.pressed, i, i+1)
	}
	for _, h := range m.handlers {
		fireButton(h.buttonRelease, b, x, y)
	}
}

// SetPointerLocked records a lock change reported by the host, such as the
// user pressing Escape.
func (m *Manager) SetPointerLocked(locked bool) { m.mouse.locked = locked }

// MouseMove dispatches relative movement. Deltas are negated so that
// moving right or down yields negative values.
func (m *Manager) MouseMove(dx, dy float32) {
	m.mouse.x += dx
	m.mouse.y += dy
	for _, h := range m.handlers {
		if h.mouseMove != nil {
			h.mouseMove(-dx, -dy)
		}
	}
}

func (m *Manager) Wheel(dx, dy float32) {
	for _, h := range m.handlers {
		if h.wheel != nil {
			h.wheel(dx, dy)
		}
	}
}

// DispatchHeld fires OnKey and OnButton listeners for everything currently
// held. Call once per frame before updating the scene.
func (m *Manager) DispatchHeld() {
	for _, k := range m.keyboard.pressed {
		for _, h := range m.handlers {
			fireKey(h.keys, k)
		}
	}
	for _, b := range m.mouse.pressed {
		for _, h := range m.handlers {
			fireButton(h.buttons, b, m.mouse.x, m.mouse.y)
		}
	}
}
