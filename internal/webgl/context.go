//go:build js && wasm

// Package webgl implements gpu.Context on a browser WebGL 1 context.
package webgl

import (
	"errors"
	"image"
	"syscall/js"
	"unsafe"

	"scenegl/core"
	"scenegl/gpu"
)

var ErrNoWebGL = errors.New("webgl context unavailable")

type uniformKey struct {
	program uint32
	name    string
}

// Context maps the integer handles of gpu.Context onto WebGL objects.
type Context struct {
	gl js.Value

	next     uint32
	objects  map[uint32]js.Value
	uniforms []js.Value
	lookup   map[uniformKey]int32
}

var _ gpu.Context = (*Context)(nil)

// New gets a "webgl" context from canvas.
func New(canvas js.Value) (*Context, error) {
	gl := canvas.Call("getContext", "webgl")
	if gl.IsUndefined() || gl.IsNull() {
		gl = canvas.Call("getContext", "experimental-webgl")
	}
	if gl.IsUndefined() || gl.IsNull() {
		return nil, ErrNoWebGL
	}
	core.Logger().Info("WebGL initialized",
		"version", gl.Call("getParameter", gl.Get("VERSION")).String())
	return &Context{
		gl:      gl,
		objects: make(map[uint32]js.Value),
		lookup:  make(map[uniformKey]int32),
	}, nil
}

func (c *Context) track(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	c.next++
	c.objects[c.next] = v
	return c.next
}

func (c *Context) object(h uint32) js.Value {
	if h == 0 {
		return js.Null()
	}
	if v, ok := c.objects[h]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) release(h uint32) js.Value {
	v := c.object(h)
	delete(c.objects, h)
	return v
}

func (c *Context) Enable(capability gpu.Enum)  { c.gl.Call("enable", int(capability)) }
func (c *Context) Disable(capability gpu.Enum) { c.gl.Call("disable", int(capability)) }

func (c *Context) IsEnabled(capability gpu.Enum) bool {
	return c.gl.Call("isEnabled", int(capability)).Bool()
}

func (c *Context) ClearColor(r, g, b, a float32) { c.gl.Call("clearColor", r, g, b, a) }
func (c *Context) Clear(mask gpu.Enum)           { c.gl.Call("clear", int(mask)) }

func (c *Context) Viewport(x, y, width, height int32) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *Context) GetError() gpu.Enum { return gpu.Enum(c.gl.Call("getError").Int()) }

func (c *Context) CreateBuffer() uint32 { return c.track(c.gl.Call("createBuffer")) }

func (c *Context) BindBuffer(target gpu.Enum, buffer uint32) {
	c.gl.Call("bindBuffer", int(target), c.object(buffer))
}

func (c *Context) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	c.gl.Call("bufferData", int(target), float32Array(data), int(usage))
}

func (c *Context) BufferDataUint16(target gpu.Enum, data []uint16, usage gpu.Enum) {
	c.gl.Call("bufferData", int(target), uint16Array(data), int(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) { c.gl.Call("deleteBuffer", c.release(buffer)) }

func (c *Context) CreateShader(stage gpu.Enum) uint32 {
	return c.track(c.gl.Call("createShader", int(stage)))
}

func (c *Context) ShaderSource(shader uint32, src string) {
	c.gl.Call("shaderSource", c.object(shader), src)
}

func (c *Context) CompileShader(shader uint32) { c.gl.Call("compileShader", c.object(shader)) }

func (c *Context) ShaderCompiled(shader uint32) bool {
	return c.gl.Call("getShaderParameter", c.object(shader), c.gl.Get("COMPILE_STATUS")).Bool()
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	return c.gl.Call("getShaderInfoLog", c.object(shader)).String()
}

func (c *Context) DeleteShader(shader uint32) { c.gl.Call("deleteShader", c.release(shader)) }

func (c *Context) CreateProgram() uint32 { return c.track(c.gl.Call("createProgram")) }

func (c *Context) AttachShader(program, shader uint32) {
	c.gl.Call("attachShader", c.object(program), c.object(shader))
}

func (c *Context) LinkProgram(program uint32) { c.gl.Call("linkProgram", c.object(program)) }

func (c *Context) ProgramLinked(program uint32) bool {
	return c.gl.Call("getProgramParameter", c.object(program), c.gl.Get("LINK_STATUS")).Bool()
}

func (c *Context) ProgramInfoLog(program uint32) string {
	return c.gl.Call("getProgramInfoLog", c.object(program)).String()
}

func (c *Context) UseProgram(program uint32) { c.gl.Call("useProgram", c.object(program)) }

func (c *Context) DeleteProgram(program uint32) {
	for k := range c.lookup {
		if k.program == program {
			c.uniforms[c.lookup[k]] = js.Null()
			delete(c.lookup, k)
		}
	}
	c.gl.Call("deleteProgram", c.release(program))
}

func (c *Context) AttribLocation(program uint32, name string) int32 {
	return int32(c.gl.Call("getAttribLocation", c.object(program), name).Int())
}

// UniformLocation hands out small integers standing for WebGLUniformLocation
// objects.
func (c *Context) UniformLocation(program uint32, name string) int32 {
	key := uniformKey{program, name}
	if loc, ok := c.lookup[key]; ok {
		return loc
	}
	v := c.gl.Call("getUniformLocation", c.object(program), name)
	if v.IsNull() || v.IsUndefined() {
		return -1
	}
	loc := int32(len(c.uniforms))
	c.uniforms = append(c.uniforms, v)
	c.lookup[key] = loc
	return loc
}

func (c *Context) uniform(location int32) js.Value {
	if location < 0 || int(location) >= len(c.uniforms) {
		return js.Null()
	}
	return c.uniforms[location]
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.gl.Call("enableVertexAttribArray", index)
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	c.gl.Call("disableVertexAttribArray", index)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ gpu.Enum, normalized bool, stride, offset int32) {
	c.gl.Call("vertexAttribPointer", index, size, int(typ), normalized, stride, offset)
}

func (c *Context) Uniform1i(location int32, v int32) {
	c.gl.Call("uniform1i", c.uniform(location), v)
}

func (c *Context) Uniform1f(location int32, v float32) {
	c.gl.Call("uniform1f", c.uniform(location), v)
}

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	c.gl.Call("uniform3f", c.uniform(location), x, y, z)
}

func (c *Context) Uniform4f(location int32, x, y, z, w float32) {
	c.gl.Call("uniform4f", c.uniform(location), x, y, z, w)
}

func (c *Context) UniformMatrix3fv(location int32, m []float32) {
	c.gl.Call("uniformMatrix3fv", c.uniform(location), false, float32Array(m))
}

func (c *Context) UniformMatrix4fv(location int32, m []float32) {
	c.gl.Call("uniformMatrix4fv", c.uniform(location), false, float32Array(m))
}

func (c *Context) CreateTexture() uint32 { return c.track(c.gl.Call("createTexture")) }

func (c *Context) ActiveTexture(unit gpu.Enum) { c.gl.Call("activeTexture", int(unit)) }

func (c *Context) BindTexture(target gpu.Enum, texture uint32) {
	c.gl.Call("bindTexture", int(target), c.object(texture))
}

func (c *Context) TexParameteri(target, name gpu.Enum, param int32) {
	c.gl.Call("texParameteri", int(target), int(name), param)
}

func (c *Context) TexImage2D(target gpu.Enum, img *image.RGBA) {
	b := img.Bounds()
	pixels := js.Global().Get("Uint8Array").New(len(img.Pix))
	js.CopyBytesToJS(pixels, img.Pix)
	c.gl.Call("texImage2D", int(target), 0, int(gpu.RGBA), b.Dx(), b.Dy(), 0,
		int(gpu.RGBA), int(gpu.UnsignedByte), pixels)
}

func (c *Context) DeleteTexture(texture uint32) { c.gl.Call("deleteTexture", c.release(texture)) }

func (c *Context) DrawArrays(mode gpu.Enum, first, count int32) {
	c.gl.Call("drawArrays", int(mode), first, count)
}

func (c *Context) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int32) {
	c.gl.Call("drawElements", int(mode), count, int(typ), offset)
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}

func uint16Array(data []uint16) js.Value {
	arr := js.Global().Get("Uint16Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2))
	return arr
}
