package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafetImamovic/oxide-sub000/engine/profiler"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/graph"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
)

type fakeRenderPipeline struct{}

func (*fakeRenderPipeline) Label() string       { return "test" }
func (*fakeRenderPipeline) WriteUniform([]byte) {}
func (*fakeRenderPipeline) Release()            {}

type fakeDevice struct{}

func (*fakeDevice) HasFeature(device.Feature) bool { return false }
func (*fakeDevice) MaxTextureDimension2D() uint32  { return 8192 }

func (*fakeDevice) CreateRenderPipeline(*device.RenderPipelineDescriptor) (device.RenderPipeline, error) {
	return &fakeRenderPipeline{}, nil
}

func (*fakeDevice) CreateMeshBuffers(string, []byte, []uint32) (device.MeshBuffers, error) {
	return nil, errors.New("not supported")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "rendering", StateRendering.String())
	assert.Equal(t, "torn down", StateTornDown.String())
}

func TestOverlayToggle(t *testing.T) {
	o := newDebugOverlay(false, pipeline.FillModeFill)

	o.Toggle()
	o.Toggle()

	assert.Equal(t, pipeline.FillModeFill, o.FillMode())
}

func TestOverlayNextFillModeCycles(t *testing.T) {
	o := newDebugOverlay(false, pipeline.FillModeFill)

	assert.Equal(t, pipeline.FillModeWireframe, o.NextFillMode())
	assert.Equal(t, pipeline.FillModeVertex, o.NextFillMode())
	assert.Equal(t, pipeline.FillModeFill, o.NextFillMode())
	assert.Equal(t, pipeline.FillModeFill, o.FillMode())
}

func TestOverlaySetRequestedFillMode(t *testing.T) {
	o := newDebugOverlay(false, pipeline.FillModeFill)

	o.SetRequestedFillMode(pipeline.FillModeVertex)
	assert.Equal(t, pipeline.FillModeVertex, o.FillMode())

	// The cycle continues from the set mode.
	assert.Equal(t, pipeline.FillModeFill, o.NextFillMode())
}

func TestOverlayDescribeReportsNoChange(t *testing.T) {
	m := pipeline.NewManager(&fakeDevice{})
	_, err := m.Create(pipeline.KindGeometry, pipeline.NewDescriptor(
		pipeline.WithShaderSource(pipeline.GeometryShaderSource(), "vs_main", "fs_main"),
		pipeline.WithSurfaceFormat(device.TextureFormatBGRA8UnormSrgb),
	))
	require.NoError(t, err)

	g := graph.New()
	g.AddPass(graph.NewBackgroundPass("Sky", device.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}))

	visible := newDebugOverlay(true, pipeline.FillModeWireframe)
	visible.SetEffectiveFillMode(pipeline.FillModeFill)
	hidden := newDebugOverlay(false, pipeline.FillModeWireframe)

	for _, o := range []*debugOverlay{visible, hidden} {
		mode, changed := o.Describe(g, m, profiler.NewProfiler())
		assert.False(t, changed)
		assert.Equal(t, pipeline.FillModeWireframe, mode)
	}
}
