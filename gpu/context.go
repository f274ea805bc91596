package gpu

import "image"

// Enum is a GL enumerant. Values match WebGL 1 and desktop GL.
type Enum uint32

// Capabilities.
const (
	CullFace  Enum = 0x0B44
	DepthTest Enum = 0x0B71
	Blend     Enum = 0x0BE2
)

// Clear mask bits.
const (
	DepthBufferBit Enum = 0x00000100
	ColorBufferBit Enum = 0x00004000
)

// Buffers.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4
)

// Data types.
const (
	UnsignedByte  Enum = 0x1401
	UnsignedShort Enum = 0x1403
	Float         Enum = 0x1406
)

// Shader stages.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
)

// Textures.
const (
	Texture2D        Enum = 0x0DE1
	Texture0         Enum = 0x84C0
	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	Nearest          Enum = 0x2600
	Linear           Enum = 0x2601
	ClampToEdge      Enum = 0x812F
	Repeat           Enum = 0x2901
	RGBA             Enum = 0x1908
)

// Primitive modes.
const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// Error codes returned by GetError.
const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
	ContextLost                 Enum = 0x9242
)

// Context is the subset of the WebGL 1 API the renderer drives.
//
// Object handles are opaque non-zero integers; zero means "none". Uniform
// and attribute lookups return -1 when the name is not active in the
// program. Every method must be called from the goroutine that owns the
// context.
type Context interface {
	Enable(capability Enum)
	Disable(capability Enum)
	IsEnabled(capability Enum) bool
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)

	CreateBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferDataFloat32(target Enum, data []float32, usage Enum)
	BufferDataUint16(target Enum, data []uint16, usage Enum)
	DeleteBuffer(buffer uint32)

	CreateShader(stage Enum) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride, offset int32)

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix3fv(location int32, m []float32)
	UniformMatrix4fv(location int32, m []float32)

	CreateTexture() uint32
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexParameteri(target, name Enum, param int32)
	TexImage2D(target Enum, img *image.RGBA)
	DeleteTexture(texture uint32)

	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, typ Enum, offset int32)
	GetError() Enum
}
