package libscn

import (
	"bytes"
	"fmt"
	"io"

	"gl-animation/libio"

	"github.com/pierrec/lz4/v4"
)

const MagicNumberGEO = 0xc9dae18c

// Limits of a decoded mesh. Headers asking for more are rejected before
// anything is allocated.
const (
	MaxGeoNameLength  = 1024
	MaxGeoPayloadSize = 256 << 20
)

type GeoVersion uint32

const (
	GeoVersion1_000_000 = GeoVersion(1_000_000)
)

type GeoCompression uint32

const (
	GeoCompressionNone = GeoCompression(iota)
	GeoCompressionLz4
)

func (c GeoCompression) String() string {
	switch c {
	case GeoCompressionNone:
		return "none"
	case GeoCompressionLz4:
		return "lz4"
	}
	return fmt.Sprintf("GeoCompression(%d)", uint32(c))
}

type GeoHeader struct {
	Check       uint32
	Version     GeoVersion
	Compression GeoCompression
	NameLength  uint32
	VertexCount uint32
	IndexCount  uint32
}

// EncodeMesh writes the header and name uncompressed, followed by the
// vertices and indices, lz4 framed if requested.
func EncodeMesh(w io.Writer, mesh *Mesh, compression GeoCompression) (err error) {
	var bw *libio.BinaryWriter
	var ok bool

	if bw, ok = w.(*libio.BinaryWriter); !ok {
		bw = libio.NewWriter(w)

		defer func() {
			if bw.Err != nil {
				if err == nil {
					err = bw.Err
				} else {
					err = fmt.Errorf("%v: %w", err, bw.Err)
				}
			}
		}()
	}

	header := GeoHeader{
		Check:       MagicNumberGEO,
		Version:     GeoVersion1_000_000,
		Compression: compression,
		NameLength:  uint32(len(mesh.Name)),
		VertexCount: uint32(len(mesh.Vertices)),
		IndexCount:  uint32(len(mesh.Indices)),
	}

	if !bw.WriteRef(header) {
		return fmt.Errorf("could not write mesh header: %w", bw.Err)
	}
	if !bw.WriteString(mesh.Name) {
		return fmt.Errorf("could not write mesh name: %w", bw.Err)
	}

	payload := &bytes.Buffer{}
	pw := libio.NewWriter(payload)
	pw.WriteRef(mesh.Vertices)
	pw.WriteRef(mesh.Indices)
	if pw.Err != nil {
		return fmt.Errorf("could not pack mesh %q: %w", mesh.Name, pw.Err)
	}

	data := payload.Bytes()

	switch compression {
	case GeoCompressionNone:
	case GeoCompressionLz4:
		buf := &bytes.Buffer{}
		lzw := lz4.NewWriter(buf)
		err = lzw.Apply(lz4.CompressionLevelOption(lz4.Fast))
		if err == nil {
			_, err = lzw.Write(data)
		}
		if err == nil {
			err = lzw.Close()
		}
		data = buf.Bytes()
	default:
		err = fmt.Errorf("unknown compression %v", compression)
	}

	if err != nil {
		return fmt.Errorf("could not compress mesh %q: %w", mesh.Name, err)
	}

	if !bw.WriteBytes(data) {
		return fmt.Errorf("could not write mesh %q payload: %w", mesh.Name, bw.Err)
	}

	return nil
}

func DecodeMesh(r io.Reader) (mesh *Mesh, err error) {
	var br *libio.BinaryReader
	var ok bool

	if br, ok = r.(*libio.BinaryReader); !ok {
		br = libio.NewReader(r)

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header := GeoHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected mesh header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberGEO {
		return nil, fmt.Errorf("mesh header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != GeoVersion1_000_000 {
		return nil, fmt.Errorf("mesh version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	if header.NameLength > MaxGeoNameLength {
		return nil, fmt.Errorf("mesh name length %d exceeds %d; byte 0x%08x", header.NameLength, MaxGeoNameLength, br.LastIndex)
	}
	var name string
	if !br.ReadString(int(header.NameLength), &name) {
		return nil, fmt.Errorf("expected %d bytes for mesh name; byte 0x%08x", header.NameLength, br.LastIndex)
	}

	size := uint64(header.VertexCount)*uint64(VertexSize) + uint64(header.IndexCount)*uint64(ElementIndexSize)
	if size > MaxGeoPayloadSize {
		return nil, fmt.Errorf("mesh %q payload of %d bytes exceeds %d; byte 0x%08x", name, size, MaxGeoPayloadSize, br.LastIndex)
	}

	var src io.Reader
	switch header.Compression {
	case GeoCompressionNone:
		src = br
	case GeoCompressionLz4:
		src = lz4.NewReader(br)
	default:
		return nil, fmt.Errorf("mesh %q has unknown compression %d; byte 0x%08x", name, header.Compression, br.LastIndex)
	}

	// the buffer only grows with the data actually present
	payload, err := io.ReadAll(io.LimitReader(src, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("could not read mesh %q payload: %w", name, err)
	}
	if uint64(len(payload)) != size {
		return nil, fmt.Errorf("mesh %q payload has %d bytes, header announces %d", name, len(payload), size)
	}

	pr := libio.NewReader(bytes.NewReader(payload))
	vertices := make([]Vertex, header.VertexCount)
	if !pr.ReadRef(vertices) {
		return nil, fmt.Errorf("expected %d mesh vertices; name %q: %w", header.VertexCount, name, pr.Err)
	}
	indices := make([]uint32, header.IndexCount)
	if !pr.ReadRef(indices) {
		return nil, fmt.Errorf("expected %d mesh indices; name %q: %w", header.IndexCount, name, pr.Err)
	}

	mesh = &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}
