package resource

import (
	"sync"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// Pool is the shared mesh registry the render passes draw from. Meshes keep
// their insertion order, which is also the order they are drawn in. All
// access goes through the pool's mutex; the lock is held only for iteration
// and mutation, never across GPU submission.
type Pool struct {
	mu     sync.Mutex
	meshes []*Mesh
}

// NewPool creates an empty mesh pool.
func NewPool() *Pool {
	return &Pool{}
}

// AddMesh appends a mesh to the pool. Duplicates are not rejected; adding the
// same geometry twice draws it twice.
func (p *Pool) AddMesh(m *Mesh) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.meshes = append(p.meshes, m)
}

// Len returns the number of meshes in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.meshes)
}

// PendingUploads returns the number of meshes still awaiting GPU upload.
func (p *Pool) PendingUploads() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending := 0
	for _, m := range p.meshes {
		if m.NeedsUpload() {
			pending++
		}
	}
	return pending
}

// UploadAll uploads every pending mesh in insertion order. Already uploaded
// meshes are untouched, so calling it every frame is cheap once the pool has
// settled. The first upload failure aborts the sweep.
//
// Parameters:
//   - dev: the device to allocate buffers on
//
// Returns:
//   - error: the first upload failure, or nil
func (p *Pool) UploadAll(dev device.Device) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range p.meshes {
		if err := m.Upload(dev); err != nil {
			return err
		}
	}
	return nil
}

// Range calls fn for every mesh in insertion order while holding the pool
// lock. fn must not call back into the pool.
func (p *Pool) Range(fn func(m *Mesh)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range p.meshes {
		fn(m)
	}
}

// Release frees the GPU buffers of every mesh and empties the pool.
func (p *Pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range p.meshes {
		m.Release()
	}
	p.meshes = nil
}
