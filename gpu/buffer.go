package gpu

import (
	"fmt"

	"scenegl/core"
)

// Buffer is a vertex or index buffer uploaded once at creation.
type Buffer struct {
	dev       *Device
	handle    uint32
	target    Enum
	itemSize  int32
	length    int
	attribute string
}

// NewArrayBuffer uploads vertex data made of itemSize floats per vertex.
func (d *Device) NewArrayBuffer(data []float32, itemSize int) (*Buffer, error) {
	if itemSize < 1 || itemSize > 4 {
		return nil, &ResourceError{Kind: KindBuffer, Err: fmt.Errorf("%w: item size %d", ErrInvalidData, itemSize)}
	}
	if len(data) == 0 || len(data)%itemSize != 0 {
		return nil, &ResourceError{Kind: KindBuffer, Err: fmt.Errorf("%w: %d floats for item size %d", ErrInvalidData, len(data), itemSize)}
	}

	b, err := d.newBuffer(ArrayBuffer, int32(itemSize), len(data))
	if err != nil {
		return nil, err
	}
	d.ctx.BufferDataFloat32(ArrayBuffer, data, StaticDraw)
	d.ctx.BindBuffer(ArrayBuffer, 0)
	return b, nil
}

// NewElementBuffer uploads 16-bit vertex indices.
func (d *Device) NewElementBuffer(indices []uint16) (*Buffer, error) {
	if len(indices) == 0 {
		return nil, &ResourceError{Kind: KindBuffer, Err: fmt.Errorf("%w: no indices", ErrInvalidData)}
	}

	b, err := d.newBuffer(ElementArrayBuffer, 1, len(indices))
	if err != nil {
		return nil, err
	}
	d.ctx.BufferDataUint16(ElementArrayBuffer, indices, StaticDraw)
	d.ctx.BindBuffer(ElementArrayBuffer, 0)
	return b, nil
}

func (d *Device) newBuffer(target Enum, itemSize int32, length int) (*Buffer, error) {
	handle := d.ctx.CreateBuffer()
	if handle == 0 {
		return nil, &ResourceError{Kind: KindBuffer, Err: fmt.Errorf("could not create buffer object")}
	}
	d.ctx.BindBuffer(target, handle)
	core.Logger().Debug("buffer created", "target", fmt.Sprintf("0x%X", uint32(target)), "len", length)
	return &Buffer{dev: d, handle: handle, target: target, itemSize: itemSize, length: length}, nil
}

// LinkToAttribute names the vertex attribute Bind feeds from this buffer.
func (b *Buffer) LinkToAttribute(name string) { b.attribute = name }

func (b *Buffer) Attribute() string { return b.attribute }
func (b *Buffer) ItemSize() int     { return int(b.itemSize) }

// Len is the number of scalars stored.
func (b *Buffer) Len() int { return b.length }

// Count is the number of items (vertices or indices) stored.
func (b *Buffer) Count() int { return b.length / int(b.itemSize) }

// Bind binds the buffer and, when linked, enables its attribute on bp.
func (b *Buffer) Bind(bp *BoundProgram) error {
	if b.handle == 0 {
		return &ResourceError{Kind: KindBuffer, Name: b.attribute, Err: ErrDeleted}
	}
	b.dev.ctx.BindBuffer(b.target, b.handle)
	if b.attribute == "" {
		return nil
	}
	return bp.EnableAttribute(b.attribute, b.itemSize)
}

// Unbind disables the linked attribute and unbinds the target.
func (b *Buffer) Unbind(bp *BoundProgram) error {
	b.dev.ctx.BindBuffer(b.target, 0)
	if b.attribute == "" {
		return nil
	}
	return bp.DisableAttribute(b.attribute)
}

func (b *Buffer) Delete() {
	if b.handle == 0 {
		return
	}
	b.dev.ctx.DeleteBuffer(b.handle)
	b.handle = 0
}
