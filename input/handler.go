package input

// Handler is a set of listeners registered with a Manager. At most one
// listener is kept per key, per button and per movement kind; registering
// again replaces the previous one.
type Handler struct {
	keys          map[Key]func()
	keyPress      map[Key]func()
	keyRelease    map[Key]func()
	buttons       map[MouseButton]func(x, y float32)
	buttonPress   map[MouseButton]func(x, y float32)
	buttonRelease map[MouseButton]func(x, y float32)
	mouseMove     func(dx, dy float32)
	wheel         func(dx, dy float32)
}

func NewHandler() *Handler {
	return &Handler{
		keys:          make(map[Key]func()),
		keyPress:      make(map[Key]func()),
		keyRelease:    make(map[Key]func()),
		buttons:       make(map[MouseButton]func(x, y float32)),
		buttonPress:   make(map[MouseButton]func(x, y float32)),
		buttonRelease: make(map[MouseButton]func(x, y float32)),
	}
}

// OnKey fires once per frame while k is held.
func (h *Handler) OnKey(k Key, fn func()) { h.keys[k] = fn }

func (h *Handler) OnKeyPress(k Key, fn func())   { h.keyPress[k] = fn }
func (h *Handler) OnKeyRelease(k Key, fn func()) { h.keyRelease[k] = fn }

// OnButton fires once per frame while b is held.
func (h *Handler) OnButton(b MouseButton, fn func(x, y float32)) { h.buttons[b] = fn }

func (h *Handler) OnButtonPress(b MouseButton, fn func(x, y float32)) {
	h.buttonPress[b] = fn
}

func (h *Handler) OnButtonRelease(b MouseButton, fn func(x, y float32)) {
	h.buttonRelease[b] = fn
}

// OnMouseMove receives relative movement, already inverted by the Manager.
func (h *Handler) OnMouseMove(fn func(dx, dy float32)) { h.mouseMove = fn }

// OnWheel receives scroll deltas in lines; positive dy scrolls down.
func (h *Handler) OnWheel(fn func(dx, dy float32)) { h.wheel = fn }

func fireKey(listeners map[Key]func(), k Key) {
	if fn := listeners[k]; fn != nil {
		fn()
	}
}

func fireButton(listeners map[MouseButton]func(x, y float32), b MouseButton, x, y float32) {
	if fn := listeners[b]; fn != nil {
		fn(x, y)
	}
}
