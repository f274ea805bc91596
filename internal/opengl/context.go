// Package opengl implements gpu.Context on desktop OpenGL 4.1 core.
package opengl

import (
	"fmt"
	"image"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/internal/glsl"
)

// Context forwards gpu.Context calls to the current GL context. Shader
// sources are translated from GLSL ES on the way in.
type Context struct {
	vao    uint32
	stages map[uint32]glsl.Stage
}

var _ gpu.Context = (*Context)(nil)

// New loads the GL entry points and binds the vertex array object every
// core-profile draw needs. The window's context must be current.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.Logger().Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	c := &Context{stages: make(map[uint32]glsl.Stage)}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Destroy releases the vertex array object.
func (c *Context) Destroy() {
	if c.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// ── State ─────────────────────────────────────────────────────────────────────

func (c *Context) Enable(capability gpu.Enum)  { gl.Enable(uint32(capability)) }
func (c *Context) Disable(capability gpu.Enum) { gl.Disable(uint32(capability)) }

func (c *Context) IsEnabled(capability gpu.Enum) bool {
	return gl.IsEnabled(uint32(capability))
}

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *Context) Clear(mask gpu.Enum)           { gl.Clear(uint32(mask)) }

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) GetError() gpu.Enum { return gpu.Enum(gl.GetError()) }

// ── Buffers ───────────────────────────────────────────────────────────────────

func (c *Context) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (c *Context) BindBuffer(target gpu.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (c *Context) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (c *Context) BufferDataUint16(target gpu.Enum, data []uint16, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*2, gl.Ptr(data), uint32(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

// ── Shaders and programs ──────────────────────────────────────────────────────

func (c *Context) CreateShader(stage gpu.Enum) uint32 {
	s := gl.CreateShader(uint32(stage))
	if stage == gpu.FragmentShader {
		c.stages[s] = glsl.Fragment
	} else {
		c.stages[s] = glsl.Vertex
	}
	return s
}

func (c *Context) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(glsl.Translate(src, c.stages[shader]) + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (c *Context) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (c *Context) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(shader uint32) {
	delete(c.stages, shader)
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32               { return gl.CreateProgram() }
func (c *Context) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (c *Context) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (c *Context) UseProgram(program uint32)           { gl.UseProgram(program) }
func (c *Context) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }

func (c *Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// ── Attributes and uniforms ───────────────────────────────────────────────────

func (c *Context) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (c *Context) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (c *Context) VertexAttribPointer(index uint32, size int32, typ gpu.Enum, normalized bool, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

func (c *Context) Uniform1i(location int32, v int32)   { gl.Uniform1i(location, v) }
func (c *Context) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (c *Context) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (c *Context) UniformMatrix3fv(location int32, m []float32) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (c *Context) UniformMatrix4fv(location int32, m []float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (c *Context) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (c *Context) ActiveTexture(unit gpu.Enum) { gl.ActiveTexture(uint32(unit)) }

func (c *Context) BindTexture(target gpu.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (c *Context) TexParameteri(target, name gpu.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(name), param)
}

func (c *Context) TexImage2D(target gpu.Enum, img *image.RGBA) {
	b := img.Bounds()
	gl.TexImage2D(
		uint32(target),
		0,
		gl.RGBA,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
}

func (c *Context) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

// ── Draw calls ────────────────────────────────────────────────────────────────

func (c *Context) DrawArrays(mode gpu.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (c *Context) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int32) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
}
