package input

// Key is a physical key identified by its DOM keyCode. Letters, digits and
// space share their values with GLFW key codes.
type Key int

const (
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyShift     Key = 16
	KeyControl   Key = 17
	KeyAlt       Key = 18
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyLeft      Key = 37
	KeyUp        Key = 38
	KeyRight     Key = 39
	KeyDown      Key = 40

	Key0 Key = 48
	Key1 Key = 49
	Key2 Key = 50
	Key3 Key = 51
	Key4 Key = 52
	Key5 Key = 53
	Key6 Key = 54
	Key7 Key = 55
	Key8 Key = 56
	Key9 Key = 57

	KeyA Key = 65
	KeyB Key = 66
	KeyC Key = 67
	KeyD Key = 68
	KeyE Key = 69
	KeyF Key = 70
	KeyG Key = 71
	KeyH Key = 72
	KeyI Key = 73
	KeyJ Key = 74
	KeyK Key = 75
	KeyL Key = 76
	KeyM Key = 77
	KeyN Key = 78
	KeyO Key = 79
	KeyP Key = 80
	KeyQ Key = 81
	KeyR Key = 82
	KeyS Key = 83
	KeyT Key = 84
	KeyU Key = 85
	KeyV Key = 86
	KeyW Key = 87
	KeyX Key = 88
	KeyY Key = 89
	KeyZ Key = 90
)

// MouseButton follows the DOM MouseEvent.button numbering.
type MouseButton int

const (
	MouseLeft   MouseButton = 0
	MouseMiddle MouseButton = 1
	MouseRight  MouseButton = 2
)
