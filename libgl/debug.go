package libgl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// Notify inserts an application message into the GL debug output.
func Notify(typ, severity uint32, msg string) {
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, typ, 1, severity, -1, gl.Str(msg+"\x00"))
}
