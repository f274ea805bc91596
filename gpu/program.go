package gpu

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
)

// Program is a linked vertex+fragment pair. Attribute and uniform locations
// are looked up on first use and cached by name.
type Program struct {
	dev        *Device
	handle     uint32
	name       string
	attributes map[string]uint32
	uniforms   map[string]int32
}

// NewProgram links vs and fs. The shaders may be deleted afterwards.
func (d *Device) NewProgram(name string, vs, fs *Shader) (*Program, error) {
	if vs == nil || fs == nil || vs.handle == 0 || fs.handle == 0 {
		return nil, &ResourceError{Kind: KindProgram, Name: name, Err: ErrDeleted}
	}

	handle := d.ctx.CreateProgram()
	if handle == 0 {
		return nil, &ResourceError{Kind: KindProgram, Name: name, Err: ErrLink, Log: "could not create program object"}
	}
	d.ctx.AttachShader(handle, vs.handle)
	d.ctx.AttachShader(handle, fs.handle)
	d.ctx.LinkProgram(handle)
	if !d.ctx.ProgramLinked(handle) {
		log := d.ctx.ProgramInfoLog(handle)
		d.ctx.DeleteProgram(handle)
		return nil, &ResourceError{Kind: KindProgram, Name: name, Err: ErrLink, Log: log}
	}

	core.Logger().Debug("program linked", "name", name)
	return &Program{
		dev:        d,
		handle:     handle,
		name:       name,
		attributes: make(map[string]uint32),
		uniforms:   make(map[string]int32),
	}, nil
}

// NewProgramFromSource compiles both stages and links them.
func (d *Device) NewProgramFromSource(name, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := d.NewShader(name+".vert", VertexShader, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer vs.Delete()

	fs, err := d.NewShader(name+".frag", FragmentShader, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer fs.Delete()

	return d.NewProgram(name, vs, fs)
}

func (p *Program) Name() string { return p.name }

// Bind makes p current and returns the token its uniforms are set through.
func (p *Program) Bind() *BoundProgram {
	gen := p.dev.use(p)
	return &BoundProgram{program: p, generation: gen}
}

// Unbind clears the current program if p is current.
func (p *Program) Unbind() {
	if p.dev.current == p {
		p.dev.use(nil)
	}
}

func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	p.Unbind()
	p.dev.ctx.DeleteProgram(p.handle)
	p.handle = 0
}

func (p *Program) uniformLocation(name string) (int32, error) {
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}
	loc := p.dev.ctx.UniformLocation(p.handle, name)
	if loc < 0 {
		return -1, &ResourceError{Kind: KindUniform, Name: name, Err: ErrNotFound, Log: "program " + p.name}
	}
	p.uniforms[name] = loc
	return loc, nil
}

func (p *Program) attributeLocation(name string) (uint32, error) {
	if loc, ok := p.attributes[name]; ok {
		return loc, nil
	}
	loc := p.dev.ctx.AttribLocation(p.handle, name)
	if loc < 0 {
		return 0, &ResourceError{Kind: KindAttribute, Name: name, Err: ErrNotFound, Log: "program " + p.name}
	}
	p.attributes[name] = uint32(loc)
	return uint32(loc), nil
}

// BoundProgram proves that its program is the device's current one.
// Every setter fails with ErrProgramNotBound once another Bind happened.
type BoundProgram struct {
	program    *Program
	generation uint64
}

func (b *BoundProgram) Program() *Program { return b.program }

// Valid reports whether the token is still current.
func (b *BoundProgram) Valid() bool {
	return b != nil && b.program.handle != 0 &&
		b.program.dev.current == b.program && b.program.dev.generation == b.generation
}

func (b *BoundProgram) uniform(name string) (Context, int32, error) {
	if !b.Valid() {
		return nil, -1, ErrProgramNotBound
	}
	loc, err := b.program.uniformLocation(name)
	if err != nil {
		return nil, -1, err
	}
	return b.program.dev.ctx, loc, nil
}

func (b *BoundProgram) SetInt(name string, v int32) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.Uniform1i(loc, v)
	return nil
}

func (b *BoundProgram) SetBool(name string, v bool) error {
	var i int32
	if v {
		i = 1
	}
	return b.SetInt(name, i)
}

func (b *BoundProgram) SetFloat(name string, v float32) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.Uniform1f(loc, v)
	return nil
}

func (b *BoundProgram) SetVec3(name string, v mgl32.Vec3) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.Uniform3f(loc, v[0], v[1], v[2])
	return nil
}

func (b *BoundProgram) SetVec4(name string, v mgl32.Vec4) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
	return nil
}

func (b *BoundProgram) SetMatrix3(name string, m mgl32.Mat3) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.UniformMatrix3fv(loc, m[:])
	return nil
}

func (b *BoundProgram) SetMatrix4(name string, m mgl32.Mat4) error {
	ctx, loc, err := b.uniform(name)
	if err != nil {
		return err
	}
	ctx.UniformMatrix4fv(loc, m[:])
	return nil
}

// EnableAttribute points the named attribute at the currently bound array
// buffer: size floats per vertex, tightly packed.
func (b *BoundProgram) EnableAttribute(name string, size int32) error {
	if !b.Valid() {
		return ErrProgramNotBound
	}
	loc, err := b.program.attributeLocation(name)
	if err != nil {
		return err
	}
	ctx := b.program.dev.ctx
	ctx.EnableVertexAttribArray(loc)
	ctx.VertexAttribPointer(loc, size, Float, false, 0, 0)
	return nil
}

func (b *BoundProgram) DisableAttribute(name string) error {
	if !b.Valid() {
		return ErrProgramNotBound
	}
	loc, err := b.program.attributeLocation(name)
	if err != nil {
		return err
	}
	b.program.dev.ctx.DisableVertexAttribArray(loc)
	return nil
}
