package gpu

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramNotBound is returned when a BoundProgram is used after
	// another program has been bound on the same device.
	ErrProgramNotBound = errors.New("shader program is not bound")
	ErrCompile         = errors.New("compile failed")
	ErrLink            = errors.New("link failed")
	ErrNotFound        = errors.New("not active in program")
	ErrInvalidData     = errors.New("invalid buffer data")
	ErrDeleted         = errors.New("resource deleted")
)

type ResourceKind int

const (
	KindShader ResourceKind = iota
	KindProgram
	KindUniform
	KindAttribute
	KindBuffer
	KindTexture
)

func (k ResourceKind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindUniform:
		return "uniform"
	case KindAttribute:
		return "attribute"
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	}
	return fmt.Sprintf("ResourceKind(%d)", int(k))
}

// ResourceError reports a GPU resource that could not be created or
// resolved.
type ResourceError struct {
	Kind ResourceKind
	Name string
	// Log holds the driver info log for compile and link failures.
	Log string
	Err error
}

func (e *ResourceError) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
	if e.Log != "" {
		msg += ": " + e.Log
	}
	return msg
}

func (e *ResourceError) Unwrap() error { return e.Err }

// GLError is a non-zero GetError result observed around a call.
type GLError struct {
	Call string
	Code Enum
}

func (e *GLError) Error() string {
	return fmt.Sprintf("gl error at %s: %s", e.Call, ErrorName(e.Code))
}

// ErrorName returns the symbolic name of a GetError code.
func ErrorName(code Enum) string {
	switch code {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case ContextLost:
		return "CONTEXT_LOST_WEBGL"
	}
	return fmt.Sprintf("0x%04X", uint32(code))
}
