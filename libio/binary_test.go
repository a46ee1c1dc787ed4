package libio_test

import (
	"bytes"
	"errors"
	"gl-animation/libio"
	"io"
	"testing"
)

func TestStickyError(t *testing.T) {
	br := libio.NewReader(bytes.NewReader([]byte{1, 0, 2}))
	var a, b int
	if !br.ReadUInt16(&a) || a != 1 {
		t.Fatalf("first value should be 1 but was %d", a)
	}
	if br.ReadUInt16(&b) {
		t.Fatalf("reading past the end should fail")
	}
	if !errors.Is(br.Err, io.ErrUnexpectedEOF) {
		t.Errorf("error should be unexpected EOF but was %v", br.Err)
	}
	if br.LastIndex != 2 {
		t.Errorf("failing read should start at byte 2 but was %d", br.LastIndex)
	}
	if br.ReadUInt8(&b) {
		t.Errorf("reads after an error should fail")
	}
}

func TestWriterReader(t *testing.T) {
	buf := &bytes.Buffer{}
	bw := libio.NewWriter(buf)
	bw.WriteUInt32(0xdeadbeef)
	bw.WriteUInt8(7)
	bw.WriteString("mesh")
	bw.WriteRef([]float32{1.5, -2})
	if bw.Err != nil {
		t.Fatal(bw.Err)
	}
	if bw.Index != 4+1+4+8 {
		t.Errorf("should have written 17 bytes but wrote %d", bw.Index)
	}

	br := libio.NewReader(buf)
	var magic, small int
	var name string
	floats := make([]float32, 2)
	br.ReadUInt32(&magic)
	br.ReadUInt8(&small)
	br.ReadString(4, &name)
	br.ReadRef(floats)
	if br.Err != nil {
		t.Fatal(br.Err)
	}
	if magic != 0xdeadbeef || small != 7 || name != "mesh" || floats[0] != 1.5 || floats[1] != -2 {
		t.Errorf("read back %x %d %q %v", magic, small, name, floats)
	}
	if br.Index != bw.Index {
		t.Errorf("reader should be at byte %d but was at %d", bw.Index, br.Index)
	}
}
