package renderer

import "github.com/SafetImamovic/oxide-sub000/engine/renderer/device"

// BackendType identifies the GPU backend implementation used by the Renderer.
type BackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU BackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping frame rate to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for
	// vertical blank. May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Backend is the surface and frame lifecycle layer beneath the Renderer.
// It owns the swapchain and per-frame command submission; everything above it
// works against the device abstraction only.
type Backend interface {
	// Device returns the GPU device the backend compiles and uploads against.
	Device() device.Device

	// SurfaceFormat returns the swapchain color format. Only valid after the
	// first ConfigureSurface call.
	SurfaceFormat() device.TextureFormat

	// ConfigureSurface sizes the swapchain and recreates the depth texture.
	// Must be called before the first frame and after every window resize.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display. Takes
	// effect on the next ConfigureSurface call.
	SetPresentMode(mode PresentMode)

	// AcquireFrame acquires the next swapchain texture and opens a command
	// recorder for the frame. Must be paired with SubmitFrame and Present.
	//
	// Returns:
	//   - device.Target: the frame's render target
	//   - device.Recorder: the recorder passes encode into
	//   - error: an acquisition failure; wraps device.ErrSurfaceOutdated when
	//     the surface no longer matches the window
	AcquireFrame() (device.Target, device.Recorder, error)

	// SubmitFrame finishes the frame's command recorder and submits the
	// command buffer to the GPU queue. Does not present the surface. It
	// panics when no frame is held; submitting without acquiring is a
	// programming error.
	SubmitFrame()

	// Present presents the acquired surface texture to the display and
	// releases it. Must be called once per frame after SubmitFrame.
	Present()

	// Release frees the backend's GPU resources.
	Release()
}
