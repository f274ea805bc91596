package gpu

import "scenegl/core"

// maxDrainedErrors bounds how many queued error flags CheckError clears.
const maxDrainedErrors = 16

// Device owns a Context and tracks which program is current on it.
//
// A Device is not safe for concurrent use; all calls must come from the
// goroutine that owns the context.
type Device struct {
	ctx        Context
	current    *Program
	generation uint64
}

func NewDevice(ctx Context) *Device {
	return &Device{ctx: ctx}
}

func (d *Device) Context() Context { return d.ctx }

// CurrentProgram returns the program bound last, or nil.
func (d *Device) CurrentProgram() *Program { return d.current }

// CheckError reports the first pending GL error as a *GLError and clears
// any others queued behind it.
func (d *Device) CheckError(call string) error {
	code := d.ctx.GetError()
	if code == NoError {
		return nil
	}
	for i := 0; i < maxDrainedErrors; i++ {
		if d.ctx.GetError() == NoError {
			break
		}
	}
	err := &GLError{Call: call, Code: code}
	core.Logger().Debug("gl error", "call", call, "code", ErrorName(code))
	return err
}

func (d *Device) use(p *Program) uint64 {
	var handle uint32
	if p != nil {
		handle = p.handle
	}
	d.ctx.UseProgram(handle)
	d.current = p
	d.generation++
	return d.generation
}
