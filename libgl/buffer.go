package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int)
	AllocateEmptyMutable(size int, usage int)
	Grow(size int) bool
	Write(offset int, data any)
	Size() int
	Bind(target uint32) BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) Bind(target uint32) BoundBuffer {
	State.BindBuffer(target, vbo.glId)
	return BoundBuffer(vbo)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) AllocateEmptyMutable(size int, usage int) {
	if vbo.immutable {
		log.Panicf("VBO is immutable")
	}
	if warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferData(vbo.glId, size, nil, uint32(usage))
	vbo.flags = uint32(usage)
	vbo.size = size
}

// Allocate creates immutable storage initialized with data.
func (vbo *buffer) Allocate(data any, flags int) {
	if vbo.immutable {
		log.Panicf("VBO is immutable")
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if warnAllocationSizeZero(size) {
		return
	}
	warnAllocationSize(size)
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

func warnAllocationSize(size int) {
	upperLimit := 1024 * 1000 * 1000
	if size > upperLimit {
		Notify(gl.DEBUG_TYPE_PERFORMANCE, gl.DEBUG_SEVERITY_NOTIFICATION, fmt.Sprintf("Large buffer allocation: %v > %v bytes", size, upperLimit))
	}
}

func warnAllocationSizeZero(size int) bool {
	if size != 0 {
		return false
	}
	Notify(gl.DEBUG_TYPE_ERROR, gl.DEBUG_SEVERITY_MEDIUM, "Zero size buffer allocation")
	return true
}

// GrowSize picks the new capacity for a buffer of size current that must hold
// at least size bytes. Small buffers double, large ones grow by a quarter.
func GrowSize(current, size int) int {
	newSize := current
	doubleSize := newSize + newSize
	if size > doubleSize {
		return size
	}
	if current < 16_384 {
		return doubleSize
	}
	for 0 < newSize && newSize < size {
		newSize += newSize / 4
	}
	// overflowed
	if newSize <= 0 {
		newSize = size
	}
	return newSize
}

// Grow reallocates a mutable buffer so it can hold size bytes. The contents are lost.
func (vbo *buffer) Grow(size int) bool {
	if size <= vbo.size {
		return false
	}
	if vbo.immutable {
		log.Panicf("VBO is immutable")
	}
	vbo.size = GrowSize(vbo.size, size)
	gl.NamedBufferData(vbo.glId, vbo.size, nil, vbo.flags)
	return true
}

func (vbo *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if size == 0 {
		return
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}
