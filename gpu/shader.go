package gpu

import (
	"fmt"

	"scenegl/core"
)

// Shader is a compiled vertex or fragment stage.
type Shader struct {
	dev    *Device
	handle uint32
	stage  Enum
	name   string
}

// NewShader compiles src for the given stage. A compile failure returns a
// *ResourceError carrying the driver log.
func (d *Device) NewShader(name string, stage Enum, src string) (*Shader, error) {
	if stage != VertexShader && stage != FragmentShader {
		return nil, &ResourceError{Kind: KindShader, Name: name, Err: fmt.Errorf("unknown stage 0x%X", uint32(stage))}
	}

	handle := d.ctx.CreateShader(stage)
	if handle == 0 {
		return nil, &ResourceError{Kind: KindShader, Name: name, Err: ErrCompile, Log: "could not create shader object"}
	}
	d.ctx.ShaderSource(handle, src)
	d.ctx.CompileShader(handle)
	if !d.ctx.ShaderCompiled(handle) {
		log := d.ctx.ShaderInfoLog(handle)
		d.ctx.DeleteShader(handle)
		return nil, &ResourceError{Kind: KindShader, Name: name, Err: ErrCompile, Log: log}
	}

	core.Logger().Debug("shader compiled", "name", name, "stage", stageName(stage))
	return &Shader{dev: d, handle: handle, stage: stage, name: name}, nil
}

func (s *Shader) Stage() Enum { return s.stage }

func (s *Shader) Delete() {
	if s.handle == 0 {
		return
	}
	s.dev.ctx.DeleteShader(s.handle)
	s.handle = 0
}

func stageName(stage Enum) string {
	if stage == VertexShader {
		return "vertex"
	}
	return "fragment"
}
