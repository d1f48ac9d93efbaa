package resource

import (
	"encoding/binary"
	"math"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// Vertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see the geometry shader).
// Size: 28 bytes (std430 aligned, no padding required).
type Vertex struct {
	Position [3]float32 // offset  0: vertex position in normalized device coordinates (12 bytes)
	Color    [4]float32 // offset 12: per-vertex RGBA color (16 bytes)
}

// VertexSize is the byte size of one marshalled Vertex.
const VertexSize = 28

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Color[3]))
	return buf
}

// MarshalVertices serializes a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the concatenated vertex data in declaration order.
func MarshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexSize)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// VertexLayout returns the vertex buffer layout matching the Vertex struct,
// for use in pipeline descriptors.
func VertexLayout() device.VertexBufferLayout {
	return device.VertexBufferLayout{
		ArrayStride: VertexSize,
		Attributes: []device.VertexAttribute{
			{Format: "float32x3", Offset: 0, ShaderLocation: 0},
			{Format: "float32x4", Offset: 12, ShaderLocation: 1},
		},
	}
}
