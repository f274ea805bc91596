// Package gputest provides an in-memory gpu.Context that records calls.
package gputest

import (
	"image"
	"slices"

	"scenegl/gpu"
)

// UniformCall is one uniform upload.
type UniformCall struct {
	Program uint32
	Name    string
	Values  []float32
}

// DrawCall is one DrawArrays or DrawElements.
type DrawCall struct {
	Program uint32
	Mode    gpu.Enum
	Count   int32
	Indexed bool
}

type location struct {
	program uint32
	name    string
}

// Recorder implements gpu.Context without a GPU. Every uniform and
// attribute name is active unless listed in Missing.
type Recorder struct {
	// Missing names resolve to -1 in every program.
	Missing map[string]bool
	// FailCompile makes every shader compile fail.
	FailCompile bool
	// FailLink makes every program link fail.
	FailLink bool
	// Errors is returned by GetError, one per call, before NoError.
	Errors []gpu.Enum

	Uses      []uint32
	Uniforms  []UniformCall
	Draws     []DrawCall
	Clears    []gpu.Enum
	Enables   []gpu.Enum
	Disables  []gpu.Enum
	Uploads   int
	Viewports [][4]int32

	BoundArrayBuffer   uint32
	BoundElementBuffer uint32
	BoundTexture       uint32
	ActiveUnit         gpu.Enum
	EnabledAttributes  map[uint32]bool
	AttributeSizes     map[uint32]int32
	ClearColorValue    [4]float32

	nextHandle uint32
	current    uint32
	enabled    map[gpu.Enum]bool
	uniformLoc map[location]int32
	locName    map[int32]string
	attribLoc  map[location]int32
	nextAttrib map[uint32]int32
	deleted    map[uint32]bool
}

func NewRecorder() *Recorder {
	return &Recorder{
		Missing:           make(map[string]bool),
		EnabledAttributes: make(map[uint32]bool),
		AttributeSizes:    make(map[uint32]int32),
		enabled:           make(map[gpu.Enum]bool),
		uniformLoc:        make(map[location]int32),
		locName:           make(map[int32]string),
		attribLoc:         make(map[location]int32),
		nextAttrib:        make(map[uint32]int32),
		deleted:           make(map[uint32]bool),
	}
}

var _ gpu.Context = (*Recorder)(nil)

func (r *Recorder) handle() uint32 {
	r.nextHandle++
	return r.nextHandle
}

// ProgramUses counts UseProgram calls with a non-zero program.
func (r *Recorder) ProgramUses() int {
	n := 0
	for _, p := range r.Uses {
		if p != 0 {
			n++
		}
	}
	return n
}

// UniformCount counts uploads to the named uniform.
func (r *Recorder) UniformCount(name string) int {
	n := 0
	for _, u := range r.Uniforms {
		if u.Name == name {
			n++
		}
	}
	return n
}

// LastUniform returns the values of the latest upload to name.
func (r *Recorder) LastUniform(name string) ([]float32, bool) {
	for i := len(r.Uniforms) - 1; i >= 0; i-- {
		if r.Uniforms[i].Name == name {
			return r.Uniforms[i].Values, true
		}
	}
	return nil, false
}

// Deleted reports whether handle was passed to a Delete* call.
func (r *Recorder) Deleted(handle uint32) bool { return r.deleted[handle] }

// Reset forgets recorded calls but keeps objects and state.
func (r *Recorder) Reset() {
	r.Uses = nil
	r.Uniforms = nil
	r.Draws = nil
	r.Clears = nil
	r.Enables = nil
	r.Disables = nil
	r.Uploads = 0
}

func (r *Recorder) Enable(c gpu.Enum) {
	r.enabled[c] = true
	r.Enables = append(r.Enables, c)
}

func (r *Recorder) Disable(c gpu.Enum) {
	r.enabled[c] = false
	r.Disables = append(r.Disables, c)
}

func (r *Recorder) IsEnabled(c gpu.Enum) bool { return r.enabled[c] }

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.ClearColorValue = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask gpu.Enum) { r.Clears = append(r.Clears, mask) }

func (r *Recorder) Viewport(x, y, w, h int32) {
	r.Viewports = append(r.Viewports, [4]int32{x, y, w, h})
}

func (r *Recorder) CreateBuffer() uint32 { return r.handle() }

func (r *Recorder) BindBuffer(target gpu.Enum, buffer uint32) {
	if target == gpu.ElementArrayBuffer {
		r.BoundElementBuffer = buffer
		return
	}
	r.BoundArrayBuffer = buffer
}

func (r *Recorder) BufferDataFloat32(gpu.Enum, []float32, gpu.Enum) {}
func (r *Recorder) BufferDataUint16(gpu.Enum, []uint16, gpu.Enum)   {}
func (r *Recorder) DeleteBuffer(b uint32)                           { r.deleted[b] = true }

func (r *Recorder) CreateShader(gpu.Enum) uint32            { return r.handle() }
func (r *Recorder) ShaderSource(uint32, string)             {}
func (r *Recorder) CompileShader(uint32)                    {}
func (r *Recorder) ShaderCompiled(uint32) bool              { return !r.FailCompile }
func (r *Recorder) ShaderInfoLog(uint32) string             { return "0:1: syntax error" }
func (r *Recorder) DeleteShader(s uint32)                   { r.deleted[s] = true }
func (r *Recorder) CreateProgram() uint32                   { return r.handle() }
func (r *Recorder) AttachShader(uint32, uint32)             {}
func (r *Recorder) LinkProgram(uint32)                      {}
func (r *Recorder) ProgramLinked(uint32) bool               { return !r.FailLink }
func (r *Recorder) ProgramInfoLog(uint32) string            { return "link error" }
func (r *Recorder) DeleteProgram(p uint32)                  { r.deleted[p] = true }
func (r *Recorder) CreateTexture() uint32                   { return r.handle() }
func (r *Recorder) ActiveTexture(unit gpu.Enum)             { r.ActiveUnit = unit }
func (r *Recorder) BindTexture(_ gpu.Enum, t uint32)        { r.BoundTexture = t }
func (r *Recorder) TexParameteri(gpu.Enum, gpu.Enum, int32) {}
func (r *Recorder) TexImage2D(gpu.Enum, *image.RGBA)        { r.Uploads++ }
func (r *Recorder) DeleteTexture(t uint32)                  { r.deleted[t] = true }

func (r *Recorder) UseProgram(p uint32) {
	r.current = p
	r.Uses = append(r.Uses, p)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if r.Missing[name] {
		return -1
	}
	key := location{program, name}
	if loc, ok := r.uniformLoc[key]; ok {
		return loc
	}
	loc := int32(len(r.locName))
	r.uniformLoc[key] = loc
	r.locName[loc] = name
	return loc
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	if r.Missing[name] {
		return -1
	}
	key := location{program, name}
	if loc, ok := r.attribLoc[key]; ok {
		return loc
	}
	loc := r.nextAttrib[program]
	r.nextAttrib[program]++
	r.attribLoc[key] = loc
	return loc
}

func (r *Recorder) EnableVertexAttribArray(i uint32)  { r.EnabledAttributes[i] = true }
func (r *Recorder) DisableVertexAttribArray(i uint32) { r.EnabledAttributes[i] = false }

func (r *Recorder) VertexAttribPointer(i uint32, size int32, _ gpu.Enum, _ bool, _, _ int32) {
	r.AttributeSizes[i] = size
}

func (r *Recorder) uniform(loc int32, values ...float32) {
	r.Uniforms = append(r.Uniforms, UniformCall{Program: r.current, Name: r.locName[loc], Values: values})
}

func (r *Recorder) Uniform1i(loc int32, v int32)         { r.uniform(loc, float32(v)) }
func (r *Recorder) Uniform1f(loc int32, v float32)       { r.uniform(loc, v) }
func (r *Recorder) Uniform3f(loc int32, x, y, z float32) { r.uniform(loc, x, y, z) }
func (r *Recorder) Uniform4f(loc int32, x, y, z, w float32) {
	r.uniform(loc, x, y, z, w)
}
func (r *Recorder) UniformMatrix3fv(loc int32, m []float32) { r.uniform(loc, slices.Clone(m)...) }
func (r *Recorder) UniformMatrix4fv(loc int32, m []float32) { r.uniform(loc, slices.Clone(m)...) }

func (r *Recorder) DrawArrays(mode gpu.Enum, _, count int32) {
	r.Draws = append(r.Draws, DrawCall{Program: r.current, Mode: mode, Count: count})
}

func (r *Recorder) DrawElements(mode gpu.Enum, count int32, _ gpu.Enum, _ int32) {
	r.Draws = append(r.Draws, DrawCall{Program: r.current, Mode: mode, Count: count, Indexed: true})
}

func (r *Recorder) GetError() gpu.Enum {
	if len(r.Errors) == 0 {
		return gpu.NoError
	}
	code := r.Errors[0]
	r.Errors = r.Errors[1:]
	return code
}
