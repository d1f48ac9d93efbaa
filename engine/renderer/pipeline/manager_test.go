package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// fakeRenderPipeline records uniform writes and release calls.
type fakeRenderPipeline struct {
	label    string
	released bool
	uniforms [][]byte
}

func (p *fakeRenderPipeline) Label() string { return p.label }

func (p *fakeRenderPipeline) WriteUniform(data []byte) {
	p.uniforms = append(p.uniforms, data)
}

func (p *fakeRenderPipeline) Release() { p.released = true }

// fakeDevice records every pipeline descriptor it compiles and can be told to
// fail the next compilation.
type fakeDevice struct {
	features map[device.Feature]bool
	maxDim   uint32

	created  []*device.RenderPipelineDescriptor
	compiled []*fakeRenderPipeline
	failNext error
}

func newFakeDevice(features ...device.Feature) *fakeDevice {
	d := &fakeDevice{
		features: make(map[device.Feature]bool),
		maxDim:   8192,
	}
	for _, f := range features {
		d.features[f] = true
	}
	return d
}

func (d *fakeDevice) HasFeature(f device.Feature) bool { return d.features[f] }

func (d *fakeDevice) MaxTextureDimension2D() uint32 { return d.maxDim }

func (d *fakeDevice) CreateRenderPipeline(desc *device.RenderPipelineDescriptor) (device.RenderPipeline, error) {
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return nil, err
	}
	d.created = append(d.created, desc)
	p := &fakeRenderPipeline{label: desc.Label}
	d.compiled = append(d.compiled, p)
	return p, nil
}

func (d *fakeDevice) CreateMeshBuffers(string, []byte, []uint32) (device.MeshBuffers, error) {
	return nil, errors.New("not supported")
}

func testDescriptor(mode FillMode) Descriptor {
	return NewDescriptor(
		WithShaderSource("shader source", "vs_main", "fs_main"),
		WithSurfaceFormat(device.TextureFormatBGRA8UnormSrgb),
		WithFillMode(mode),
		WithDepthEnabled(true),
	)
}

func TestResolveFillMode(t *testing.T) {
	tests := []struct {
		name      string
		features  []device.Feature
		requested FillMode
		want      FillMode
		wantPoly  device.PolygonMode
	}{
		{"fill always supported", nil, FillModeFill, FillModeFill, device.PolygonModeFill},
		{"wireframe without feature degrades", nil, FillModeWireframe, FillModeFill, device.PolygonModeFill},
		{"vertex without feature degrades", nil, FillModeVertex, FillModeFill, device.PolygonModeFill},
		{"wireframe with feature honored", []device.Feature{device.FeaturePolygonModeLine}, FillModeWireframe, FillModeWireframe, device.PolygonModeLine},
		{"vertex with feature honored", []device.Feature{device.FeaturePolygonModePoint}, FillModeVertex, FillModeVertex, device.PolygonModePoint},
		{"line feature does not enable vertex", []device.Feature{device.FeaturePolygonModeLine}, FillModeVertex, FillModeFill, device.PolygonModeFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effective, poly := ResolveFillMode(newFakeDevice(tt.features...), tt.requested)
			assert.Equal(t, tt.want, effective)
			assert.Equal(t, tt.wantPoly, poly)
		})
	}
}

func TestCreateAppliesFeatureFallback(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(dev)

	effective, err := m.Create(KindGeometry, testDescriptor(FillModeWireframe))
	require.NoError(t, err)

	assert.Equal(t, FillModeFill, effective)
	require.Len(t, dev.created, 1)
	assert.Equal(t, device.PolygonModeFill, dev.created[0].PolygonMode)

	// The request is preserved even though the compiled mode degraded.
	p := m.Get(KindGeometry)
	assert.Equal(t, FillModeWireframe, p.FillMode())
	assert.Equal(t, FillModeFill, p.EffectiveFillMode())
	assert.Equal(t, FillModeFill, m.EffectiveFillMode(KindGeometry))
}

func TestCreateHonorsSupportedMode(t *testing.T) {
	dev := newFakeDevice(device.FeaturePolygonModeLine)
	m := NewManager(dev)

	effective, err := m.Create(KindGeometry, testDescriptor(FillModeWireframe))
	require.NoError(t, err)

	assert.Equal(t, FillModeWireframe, effective)
	assert.Equal(t, device.PolygonModeLine, dev.created[0].PolygonMode)
}

func TestCreateDefaultsLabelToKind(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(dev)

	_, err := m.Create(KindLighting, testDescriptor(FillModeFill))
	require.NoError(t, err)
	assert.Equal(t, "lighting", dev.created[0].Label)
}

func TestGetPanicsOnMissingKind(t *testing.T) {
	m := NewManager(newFakeDevice())

	assert.Panics(t, func() { m.Get(KindPostProcess) })
	assert.Panics(t, func() { m.EffectiveFillMode(KindPostProcess) })
	assert.Panics(t, func() { m.Rebuild(KindPostProcess, FillModeFill) })
}

func TestRebuildSwapsAtomically(t *testing.T) {
	dev := newFakeDevice(device.FeaturePolygonModeLine)
	m := NewManager(dev)

	_, err := m.Create(KindGeometry, testDescriptor(FillModeFill))
	require.NoError(t, err)
	old := dev.compiled[0]

	effective, err := m.Rebuild(KindGeometry, FillModeWireframe)
	require.NoError(t, err)

	assert.Equal(t, FillModeWireframe, effective)
	assert.True(t, old.released, "previous pipeline should be released after swap")
	assert.Equal(t, FillModeWireframe, m.Get(KindGeometry).EffectiveFillMode())
}

func TestRebuildFailureKeepsPrevious(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(dev)

	_, err := m.Create(KindGeometry, testDescriptor(FillModeFill))
	require.NoError(t, err)
	old := dev.compiled[0]

	dev.failNext = errors.New("shader stage mismatch")
	effective, err := m.Rebuild(KindGeometry, FillModeVertex)

	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, KindGeometry, compErr.Kind)

	// The slot still holds the previous pipeline and reports its mode.
	assert.Equal(t, FillModeFill, effective)
	assert.False(t, old.released)
	assert.Same(t, old, m.Get(KindGeometry).Raw())
}

func TestRebuildAppliesFeatureFallback(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(dev)

	_, err := m.Create(KindGeometry, testDescriptor(FillModeFill))
	require.NoError(t, err)

	effective, err := m.Rebuild(KindGeometry, FillModeWireframe)
	require.NoError(t, err)

	assert.Equal(t, FillModeFill, effective)
	require.Len(t, dev.created, 2)
	assert.Equal(t, device.PolygonModeFill, dev.created[1].PolygonMode)
}

func TestKindsSortedAndHas(t *testing.T) {
	m := NewManager(newFakeDevice())

	for _, k := range []Kind{KindPostProcess, KindGeometry, KindLighting} {
		_, err := m.Create(k, testDescriptor(FillModeFill))
		require.NoError(t, err)
	}

	assert.Equal(t, []Kind{KindGeometry, KindLighting, KindPostProcess}, m.Kinds())
	assert.True(t, m.Has(KindGeometry))
	assert.False(t, m.Has(KindTexture))
}

func TestReleaseEmptiesManager(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(dev)

	_, err := m.Create(KindGeometry, testDescriptor(FillModeFill))
	require.NoError(t, err)

	m.Release()

	assert.True(t, dev.compiled[0].released)
	assert.False(t, m.Has(KindGeometry))
	assert.Empty(t, m.Kinds())
}
