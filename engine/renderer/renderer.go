package renderer

import (
	"log"
	"sync"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend Backend

	configured bool
	width      int
	height     int

	// Pre-configuration state collected from builder options
	pendingPresentMode *PresentMode
}

// Renderer sits between the frame driver and the GPU backend. It owns the
// surface configuration policy: resizes are validated and clamped here, and
// frames are refused until the surface has a real size.
type Renderer interface {
	// Device returns the GPU device pipelines and meshes are created against.
	Device() device.Device

	// SurfaceFormat returns the swapchain color format. Only valid once
	// SurfaceConfigured reports true.
	SurfaceFormat() device.TextureFormat

	// Resize reconfigures the surface for a new window size. A zero width or
	// height is ignored, so minimized windows never produce an invalid
	// swapchain. Dimensions beyond the device's maximum texture size are
	// clamped to it.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SurfaceConfigured reports whether the surface has been given a valid
	// size. Until it returns true, BeginFrame refuses to acquire frames.
	SurfaceConfigured() bool

	// Size returns the current configured surface size in pixels.
	Size() (width, height int)

	// BeginFrame acquires the next frame's target and recorder.
	//
	// Returns:
	//   - device.Target: the frame's render target
	//   - device.Recorder: the recorder render passes encode into
	//   - error: device.ErrSurfaceNotConfigured before the first resize,
	//     a wrapped device.ErrSurfaceOutdated mid-resize, or a fatal
	//     acquisition failure
	BeginFrame() (device.Target, device.Recorder, error)

	// EndFrame submits the frame's recorded commands to the GPU queue.
	EndFrame()

	// Present displays the submitted frame. Must follow EndFrame.
	Present()

	// Release frees the renderer's GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer wraps a backend with the surface configuration policy.
//
// Parameters:
//   - backend: the GPU backend to drive
//   - opts: builder options applied before first use
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backend Backend, opts ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:      &sync.Mutex{},
		backend: backend,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}
	return r
}

func (r *renderer) Device() device.Device {
	return r.backend.Device()
}

func (r *renderer) SurfaceFormat() device.TextureFormat {
	return r.backend.SurfaceFormat()
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Minimized windows report zero dimensions; configuring a zero-sized
	// swapchain is a validation error, so keep the previous configuration.
	if width == 0 || height == 0 {
		return
	}

	maxDim := int(r.backend.Device().MaxTextureDimension2D())
	if width > maxDim {
		log.Printf("surface width %d exceeds device maximum %d, clamping", width, maxDim)
		width = maxDim
	}
	if height > maxDim {
		log.Printf("surface height %d exceeds device maximum %d, clamping", height, maxDim)
		height = maxDim
	}

	r.backend.ConfigureSurface(width, height)
	r.width = width
	r.height = height
	r.configured = true
}

func (r *renderer) SurfaceConfigured() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.configured
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.width, r.height
}

func (r *renderer) BeginFrame() (device.Target, device.Recorder, error) {
	r.mu.Lock()
	configured := r.configured
	r.mu.Unlock()

	if !configured {
		return nil, nil, device.ErrSurfaceNotConfigured
	}

	return r.backend.AcquireFrame()
}

func (r *renderer) EndFrame() {
	r.backend.SubmitFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
