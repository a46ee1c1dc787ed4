package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader reads fixed size values and remembers the first error.
// Every read after an error is a no-op returning false.
type BinaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	// offset after the last successful read
	Index int
	// offset of the value read last
	LastIndex int
	Err       error
	buf       []byte
}

func NewReader(r io.Reader) *BinaryReader {
	return &BinaryReader{Src: r, Order: binary.LittleEndian}
}

// ReadBytes reads exactly n bytes into an internal buffer, see Bytes.
func (br *BinaryReader) ReadBytes(n int) (ok bool) {
	if br.Err != nil {
		return false
	}

	if cap(br.buf) < n {
		br.buf = make([]byte, n)
	} else {
		br.buf = br.buf[:n]
	}

	nread, err := io.ReadFull(br.Src, br.buf)
	br.LastIndex = br.Index
	br.Index += nread
	if err != nil {
		br.Err = err
	}
	return br.Err == nil
}

// Bytes returns the buffer filled by the last ReadBytes.
// It is only valid until the next read.
func (br *BinaryReader) Bytes() []byte {
	return br.buf
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	n, err = br.Src.Read(p)
	br.LastIndex = br.Index
	br.Index += n
	return
}

func (br *BinaryReader) ReadUInt8(i *int) (ok bool) {
	if !br.ReadBytes(1) {
		return false
	}
	*i = int(br.buf[0])
	return true
}

func (br *BinaryReader) ReadUInt16(i *int) (ok bool) {
	if !br.ReadBytes(2) {
		return false
	}
	*i = int(br.Order.Uint16(br.buf))
	return true
}

func (br *BinaryReader) ReadUInt32(i *int) (ok bool) {
	if !br.ReadBytes(4) {
		return false
	}
	*i = int(br.Order.Uint32(br.buf))
	return true
}

func (br *BinaryReader) ReadString(n int, s *string) (ok bool) {
	if !br.ReadBytes(n) {
		return false
	}
	*s = string(br.buf)
	return true
}

// ReadRef decodes into a pointer to a fixed size value or a slice of them.
func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	err := binary.Read(br.Src, br.Order, data)
	br.LastIndex = br.Index
	if err != nil {
		br.Err = err
		return false
	}
	br.Index += binary.Size(data)
	return true
}

// BinaryWriter is the counterpart of BinaryReader.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	// bytes written so far
	Index int
	Err   error
	buf   [4]byte
}

func NewWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{Dst: w, Order: binary.LittleEndian}
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}

	n, err := bw.Dst.Write(p)
	bw.Index += n
	if err != nil {
		bw.Err = err
		return false
	}
	return true
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	n, err = bw.Dst.Write(p)
	bw.Index += n
	return
}

func (bw *BinaryWriter) WriteUInt8(i uint8) (ok bool) {
	bw.buf[0] = i
	return bw.WriteBytes(bw.buf[:1])
}

func (bw *BinaryWriter) WriteUInt16(i uint16) (ok bool) {
	bw.Order.PutUint16(bw.buf[:2], i)
	return bw.WriteBytes(bw.buf[:2])
}

func (bw *BinaryWriter) WriteUInt32(i uint32) (ok bool) {
	bw.Order.PutUint32(bw.buf[:4], i)
	return bw.WriteBytes(bw.buf[:4])
}

func (bw *BinaryWriter) WriteString(s string) (ok bool) {
	return bw.WriteBytes([]byte(s))
}

func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	err := binary.Write(bw.Dst, bw.Order, data)
	if err != nil {
		bw.Err = err
		return false
	}
	bw.Index += binary.Size(data)
	return true
}
