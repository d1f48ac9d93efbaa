package renderer

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	dev      *wgpu.Device
	queue    *wgpu.Queue

	abstractDevice device.Device

	surfaceFormat    *wgpu.TextureFormat
	depthTextureView *wgpu.TextureView
	presentMode      wgpu.PresentMode

	width  int
	height int

	// Frame state held between AcquireFrame and Present.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
}

var _ Backend = &wgpuBackendImpl{}

// NewWGPUBackend creates a backend rendering to the given surface. The
// adapter and device are requested synchronously; callers that need
// asynchronous startup run this in their own goroutine.
//
// Parameters:
//   - surfaceDescriptor: the platform surface to render to
//   - forceFallbackAdapter: true to force a CPU/software adapter
//
// Returns:
//   - Backend: the initialized backend
//   - error: an adapter or device acquisition failure
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (Backend, error) {
	runtime.LockOSThread()
	b := &wgpuBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.dev = dev
	b.queue = dev.GetQueue()
	b.abstractDevice = device.NewWGPUDevice(dev, b.queue)

	return b, nil
}

func (b *wgpuBackendImpl) Device() device.Device {
	return b.abstractDevice
}

func (b *wgpuBackendImpl) SurfaceFormat() device.TextureFormat {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return device.TextureFormatUnknown
	}
	return device.FromWGPUTextureFormat(*b.surfaceFormat)
}

func (b *wgpuBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.dev, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	// Depth texture extent must match the surface.
	depthTexture, err := b.dev.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	b.width = width
	b.height = height
}

// classifyAcquireError wraps transient swapchain errors in
// device.ErrSurfaceOutdated so callers can skip the frame instead of dying.
// wgpu-native reports these as outdated, lost, or timed out surfaces.
func classifyAcquireError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "outdated") || strings.Contains(msg, "lost") || strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") {
		return fmt.Errorf("%w: %v", device.ErrSurfaceOutdated, err)
	}
	return err
}

func (b *wgpuBackendImpl) AcquireFrame() (device.Target, device.Recorder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Only one surface texture may be held at a time; wgpu-native rejects a
	// second acquire with "Surface image is already acquired".
	if b.frameSurface != nil {
		return nil, nil, fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, nil, classifyAcquireError(err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, nil, err
	}

	encoder, err := b.dev.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return nil, nil, err
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	b.frameEncoder = encoder

	target := device.NewWGPUTarget(view, uint32(b.width), uint32(b.height))
	recorder := device.NewWGPURecorder(encoder, b.depthTextureView)

	return target, recorder, nil
}

func (b *wgpuBackendImpl) SubmitFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		panic("frame submitted before acquisition")
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.dev != nil {
		b.dev.Release()
		b.dev = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
