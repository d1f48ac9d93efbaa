package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/resource"
	"github.com/SafetImamovic/oxide-sub000/engine/ui"
)

type fakeTarget struct{ w, h uint32 }

func (t *fakeTarget) Width() uint32  { return t.w }
func (t *fakeTarget) Height() uint32 { return t.h }

// fakePassEncoder records the commands a pass issues.
type fakePassEncoder struct {
	load      device.LoadOp
	clear     device.Color
	pipelines []device.RenderPipeline
	drawn     []device.MeshBuffers
	ended     bool
}

func (e *fakePassEncoder) SetPipeline(p device.RenderPipeline) {
	e.pipelines = append(e.pipelines, p)
}

func (e *fakePassEncoder) DrawMesh(b device.MeshBuffers) {
	e.drawn = append(e.drawn, b)
}

func (e *fakePassEncoder) End() { e.ended = true }

type fakeRecorder struct {
	passes []*fakePassEncoder
}

func (r *fakeRecorder) BeginPass(_ device.Target, load device.LoadOp, clear device.Color) device.PassEncoder {
	e := &fakePassEncoder{load: load, clear: clear}
	r.passes = append(r.passes, e)
	return e
}

type fakeRenderPipeline struct{}

func (*fakeRenderPipeline) Label() string       { return "test" }
func (*fakeRenderPipeline) WriteUniform([]byte) {}
func (*fakeRenderPipeline) Release()            {}

type fakeMeshBuffers struct{ indices uint32 }

func (b *fakeMeshBuffers) IndexCount() uint32 { return b.indices }
func (b *fakeMeshBuffers) Release()           {}

type fakeDevice struct{}

func (*fakeDevice) HasFeature(device.Feature) bool { return false }
func (*fakeDevice) MaxTextureDimension2D() uint32  { return 8192 }

func (*fakeDevice) CreateRenderPipeline(*device.RenderPipelineDescriptor) (device.RenderPipeline, error) {
	return &fakeRenderPipeline{}, nil
}

func (*fakeDevice) CreateMeshBuffers(_ string, _ []byte, indices []uint32) (device.MeshBuffers, error) {
	return &fakeMeshBuffers{indices: uint32(len(indices))}, nil
}

// namedPass appends its name to a shared log when recorded.
type namedPass struct {
	name    string
	enabled bool
	log     *[]string
}

func (p *namedPass) Name() string            { return p.name }
func (p *namedPass) Enabled() bool           { return p.enabled }
func (p *namedPass) SetEnabled(enabled bool) { p.enabled = enabled }
func (p *namedPass) DescribeUI(ui.Builder)   {}

func (p *namedPass) Record(device.Target, device.Recorder, pipeline.Manager) {
	*p.log = append(*p.log, p.name)
}

func geometryManager(t *testing.T) pipeline.Manager {
	t.Helper()
	m := pipeline.NewManager(&fakeDevice{})
	_, err := m.Create(pipeline.KindGeometry, pipeline.NewDescriptor(
		pipeline.WithShaderSource("shader source", "vs_main", "fs_main"),
		pipeline.WithSurfaceFormat(device.TextureFormatBGRA8UnormSrgb),
	))
	require.NoError(t, err)
	return m
}

func TestExecuteRunsEnabledPassesInOrder(t *testing.T) {
	var log []string
	g := New()
	g.AddPass(&namedPass{name: "a", enabled: true, log: &log})
	g.AddPass(&namedPass{name: "b", enabled: false, log: &log})
	g.AddPass(&namedPass{name: "c", enabled: true, log: &log})

	g.Execute(&fakeTarget{w: 800, h: 600}, &fakeRecorder{}, geometryManager(t))

	assert.Equal(t, []string{"a", "c"}, log)
}

func TestReorderSwapsPasses(t *testing.T) {
	var log []string
	g := New()
	g.AddPass(&namedPass{name: "a", enabled: true, log: &log})
	g.AddPass(&namedPass{name: "b", enabled: true, log: &log})
	g.AddPass(&namedPass{name: "c", enabled: true, log: &log})

	g.Reorder(0, 2)
	g.Execute(&fakeTarget{}, &fakeRecorder{}, geometryManager(t))
	assert.Equal(t, []string{"c", "b", "a"}, log)

	// Swapping back restores the original order.
	log = nil
	g.Reorder(2, 0)
	g.Execute(&fakeTarget{}, &fakeRecorder{}, geometryManager(t))
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

func TestReorderPanicsOutOfRange(t *testing.T) {
	g := New()
	g.AddPass(NewBackgroundPass("bg", device.Color{}))

	assert.Panics(t, func() { g.Reorder(0, 1) })
	assert.Panics(t, func() { g.Reorder(-1, 0) })
	assert.Panics(t, func() { g.Reorder(1, 0) })
}

func TestBackgroundPassClearsWithItsColor(t *testing.T) {
	color := device.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	rec := &fakeRecorder{}

	p := NewBackgroundPass("Sky", color)
	assert.True(t, p.Enabled())

	p.Record(&fakeTarget{w: 800, h: 600}, rec, geometryManager(t))

	require.Len(t, rec.passes, 1)
	assert.Equal(t, device.LoadOpClear, rec.passes[0].load)
	assert.Equal(t, color, rec.passes[0].clear)
	assert.True(t, rec.passes[0].ended)
	assert.Empty(t, rec.passes[0].drawn)
}

func TestGeometryPassSkipsPendingMeshes(t *testing.T) {
	dev := &fakeDevice{}
	pool := resource.NewPool()

	uploaded := resource.NewTriangle("triangle", [4]float32{1, 0, 0, 1})
	require.NoError(t, uploaded.Upload(dev))
	pool.AddMesh(uploaded)
	pool.AddMesh(resource.NewQuad("quad", [4]float32{0, 1, 0, 1})) // stays pending

	rec := &fakeRecorder{}
	p := NewGeometryPass("Geometry", pool)
	p.Record(&fakeTarget{w: 800, h: 600}, rec, geometryManager(t))

	require.Len(t, rec.passes, 1)
	pass := rec.passes[0]
	assert.Equal(t, device.LoadOpLoad, pass.load)
	require.Len(t, pass.pipelines, 1, "pipeline should be bound exactly once")
	require.Len(t, pass.drawn, 1)
	assert.Same(t, uploaded.Buffers(), pass.drawn[0])
	assert.True(t, pass.ended)
}

func TestExecuteBackgroundOnlyClearsWithoutDrawing(t *testing.T) {
	pool := resource.NewPool()
	pool.AddMesh(resource.NewTriangle("triangle", [4]float32{1, 0, 0, 1}))

	g := New()
	g.AddPass(NewBackgroundPass("Sky", device.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}))
	geo := NewGeometryPass("Geometry", pool)
	geo.SetEnabled(false)
	g.AddPass(geo)

	rec := &fakeRecorder{}
	g.Execute(&fakeTarget{w: 800, h: 600}, rec, geometryManager(t))

	require.Len(t, rec.passes, 1)
	assert.Equal(t, device.LoadOpClear, rec.passes[0].load)
	assert.Empty(t, rec.passes[0].pipelines)
	assert.Empty(t, rec.passes[0].drawn)
}

// toggleBuilder flips every checkbox it is shown, simulating a user click.
type toggleBuilder struct {
	ui.Builder
}

func (b *toggleBuilder) Heading(string) {}
func (b *toggleBuilder) Label(string)   {}

func (b *toggleBuilder) Checkbox(_ string, value *bool) bool {
	*value = !*value
	return true
}

func (b *toggleBuilder) ColorPicker(string, *device.Color) bool { return false }

func TestDescribeUICanDisablePass(t *testing.T) {
	p := NewBackgroundPass("Sky", device.Color{})
	require.True(t, p.Enabled())

	p.DescribeUI(&toggleBuilder{})

	assert.False(t, p.Enabled())
}
