package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Payload is what a Node carries: a camera, a light or a mesh. The set is
// closed; only types in this package implement it.
type Payload interface {
	// Update advances the payload by the time elapsed since the last frame.
	Update(elapsed time.Duration)
	payload()
}

// Collector receives the payload of every visible node during Collect,
// together with the node's world matrix.
type Collector interface {
	Add(p Payload, world mgl32.Mat4) error
}

// milliseconds converts elapsed time to the fractional milliseconds the
// camera speeds are expressed in.
func milliseconds(d time.Duration) float32 {
	return float32(d.Seconds() * 1000)
}
