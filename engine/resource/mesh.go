package resource

import (
	"fmt"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// Mesh is CPU-side geometry plus its optional GPU residency. A mesh starts
// pending: the vertex and index data live on the CPU and no GPU buffers
// exist. Upload moves it to ready exactly once; both states are observable
// and render passes must skip pending meshes rather than fail on them.
type Mesh struct {
	name     string
	vertices []Vertex
	indices  []uint32
	buffers  device.MeshBuffers
}

// NewMesh creates a pending mesh from CPU-side geometry.
//
// Parameters:
//   - name: the mesh name, used for buffer labels and logging
//   - vertices: the vertex data
//   - indices: the triangle index data
//
// Returns:
//   - *Mesh: a mesh with no GPU buffers, reporting NeedsUpload() == true
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		name:     name,
		vertices: vertices,
		indices:  indices,
	}
}

// Name returns the mesh name.
func (m *Mesh) Name() string {
	return m.name
}

// NeedsUpload reports whether the mesh still awaits its GPU upload. While it
// returns true, Buffers returns nil.
func (m *Mesh) NeedsUpload() bool {
	return m.buffers == nil
}

// Buffers returns the GPU buffers for the mesh, or nil while it is pending.
func (m *Mesh) Buffers() device.MeshBuffers {
	return m.buffers
}

// VertexCount returns the number of CPU-side vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// IndexCount returns the number of CPU-side indices.
func (m *Mesh) IndexCount() int {
	return len(m.indices)
}

// Upload creates the mesh's GPU buffers and writes the vertex and index data.
// It is idempotent: calling it on an already uploaded mesh does nothing, so
// the pending to ready transition happens at most once.
//
// Parameters:
//   - dev: the device to allocate the buffers on
//
// Returns:
//   - error: a buffer creation failure; the mesh stays pending on error
func (m *Mesh) Upload(dev device.Device) error {
	if m.buffers != nil {
		return nil
	}

	buffers, err := dev.CreateMeshBuffers(m.name, MarshalVertices(m.vertices), m.indices)
	if err != nil {
		return fmt.Errorf("failed to upload mesh %s: %w", m.name, err)
	}
	m.buffers = buffers

	return nil
}

// Release frees the mesh's GPU buffers, returning it to the pending state.
func (m *Mesh) Release() {
	if m.buffers != nil {
		m.buffers.Release()
		m.buffers = nil
	}
}
