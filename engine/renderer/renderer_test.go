package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

type fakeTarget struct{ w, h uint32 }

func (t *fakeTarget) Width() uint32  { return t.w }
func (t *fakeTarget) Height() uint32 { return t.h }

type fakeRecorder struct{}

func (*fakeRecorder) BeginPass(device.Target, device.LoadOp, device.Color) device.PassEncoder {
	return nil
}

type fakeDevice struct{ maxDim uint32 }

func (*fakeDevice) HasFeature(device.Feature) bool { return false }
func (d *fakeDevice) MaxTextureDimension2D() uint32 {
	if d.maxDim == 0 {
		return 8192
	}
	return d.maxDim
}

func (*fakeDevice) CreateRenderPipeline(*device.RenderPipelineDescriptor) (device.RenderPipeline, error) {
	return nil, errors.New("not supported")
}

func (*fakeDevice) CreateMeshBuffers(string, []byte, []uint32) (device.MeshBuffers, error) {
	return nil, errors.New("not supported")
}

// fakeBackend records surface configurations and frame lifecycle calls.
type fakeBackend struct {
	dev *fakeDevice

	configures  [][2]int
	presentMode *PresentMode
	acquireErr  error

	submits  int
	presents int
	released bool
}

var _ Backend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{dev: &fakeDevice{}}
}

func (b *fakeBackend) Device() device.Device { return b.dev }

func (b *fakeBackend) SurfaceFormat() device.TextureFormat {
	return device.TextureFormatBGRA8UnormSrgb
}

func (b *fakeBackend) ConfigureSurface(width, height int) {
	b.configures = append(b.configures, [2]int{width, height})
}

func (b *fakeBackend) SetPresentMode(mode PresentMode) { b.presentMode = &mode }

func (b *fakeBackend) AcquireFrame() (device.Target, device.Recorder, error) {
	if b.acquireErr != nil {
		return nil, nil, b.acquireErr
	}
	return &fakeTarget{w: 800, h: 600}, &fakeRecorder{}, nil
}

func (b *fakeBackend) SubmitFrame() { b.submits++ }
func (b *fakeBackend) Present()     { b.presents++ }
func (b *fakeBackend) Release()     { b.released = true }

func TestBeginFrameRefusedBeforeFirstResize(t *testing.T) {
	r := NewRenderer(newFakeBackend())

	assert.False(t, r.SurfaceConfigured())

	_, _, err := r.BeginFrame()
	assert.ErrorIs(t, err, device.ErrSurfaceNotConfigured)
}

func TestResizeConfiguresSurface(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(backend)

	r.Resize(800, 600)

	assert.True(t, r.SurfaceConfigured())
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, [][2]int{{800, 600}}, backend.configures)

	target, rec, err := r.BeginFrame()
	require.NoError(t, err)
	assert.NotNil(t, target)
	assert.NotNil(t, rec)
}

func TestResizeIgnoresZeroDimensions(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(backend)
	r.Resize(800, 600)

	// Minimized windows report zero sizes; the previous configuration stays.
	r.Resize(0, 600)
	r.Resize(800, 0)
	r.Resize(0, 0)

	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Len(t, backend.configures, 1)
}

func TestResizeClampsToDeviceMaximum(t *testing.T) {
	backend := newFakeBackend()
	backend.dev.maxDim = 4096
	r := NewRenderer(backend)

	r.Resize(10000, 20000)

	w, h := r.Size()
	assert.Equal(t, 4096, w)
	assert.Equal(t, 4096, h)
}

func TestBeginFramePassesBackendErrorsThrough(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(backend)
	r.Resize(800, 600)

	backend.acquireErr = device.ErrSurfaceOutdated
	_, _, err := r.BeginFrame()
	assert.ErrorIs(t, err, device.ErrSurfaceOutdated)
}

func TestWithPresentModeForwardsToBackend(t *testing.T) {
	backend := newFakeBackend()
	NewRenderer(backend, WithPresentMode(PresentModeUncapped))

	require.NotNil(t, backend.presentMode)
	assert.Equal(t, PresentModeUncapped, *backend.presentMode)
}

func TestFrameLifecycleForwardsToBackend(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(backend)

	r.EndFrame()
	r.Present()
	r.Release()

	assert.Equal(t, 1, backend.submits)
	assert.Equal(t, 1, backend.presents)
	assert.True(t, backend.released)
}

func TestClassifyAcquireError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		outdated bool
	}{
		{"outdated surface", errors.New("Surface is Outdated"), true},
		{"lost surface", errors.New("surface lost"), true},
		{"timeout", errors.New("acquire timeout"), true},
		{"timed out", errors.New("operation timed out"), true},
		{"validation error", errors.New("invalid bind group"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAcquireError(tt.err)
			if tt.outdated {
				assert.ErrorIs(t, got, device.ErrSurfaceOutdated)
			} else {
				assert.Same(t, tt.err, got)
			}
		})
	}
}
