package graph

import (
	"fmt"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/resource"
	"github.com/SafetImamovic/oxide-sub000/engine/ui"
)

// geometryPass draws every uploaded mesh in the shared pool with the geometry
// pipeline. It opens a single render pass that composites over earlier passes,
// binds the pipeline once, and issues one draw per mesh. Meshes that have not
// finished their upload are skipped; a pending mesh is a normal transient
// state, not a failure.
type geometryPass struct {
	name    string
	enabled bool
	pool    *resource.Pool
}

var _ Pass = &geometryPass{}

// NewGeometryPass creates an enabled pass drawing the pool's meshes.
func NewGeometryPass(name string, pool *resource.Pool) Pass {
	return &geometryPass{
		name:    name,
		enabled: true,
		pool:    pool,
	}
}

func (p *geometryPass) Name() string {
	return p.name
}

func (p *geometryPass) Enabled() bool {
	return p.enabled
}

func (p *geometryPass) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *geometryPass) DescribeUI(b ui.Builder) {
	b.Heading(p.name)
	b.Checkbox("Enabled", &p.enabled)
	b.Label(fmt.Sprintf("Meshes: %d (%d pending)", p.pool.Len(), p.pool.PendingUploads()))
}

func (p *geometryPass) Record(target device.Target, rec device.Recorder, pipelines pipeline.Manager) {
	pass := rec.BeginPass(target, device.LoadOpLoad, device.Color{})
	pass.SetPipeline(pipelines.Get(pipeline.KindGeometry).Raw())

	p.pool.Range(func(m *resource.Mesh) {
		if m.NeedsUpload() {
			return
		}
		pass.DrawMesh(m.Buffers())
	})

	pass.End()
}
