package device

import (
	"encoding/binary"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var _ Device = &wgpuDevice{}

// wgpuDevice adapts a wgpu device to the Device interface. The webgpu binding
// exposes no line or point polygon modes, so both rasterization features
// report unsupported and pipelines requesting them are rejected.
type wgpuDevice struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	maxDim uint32
}

// NewWGPUDevice wraps an initialized wgpu device and queue.
func NewWGPUDevice(d *wgpu.Device, q *wgpu.Queue) Device {
	return &wgpuDevice{
		device: d,
		queue:  q,
		maxDim: wgpu.DefaultLimits().MaxTextureDimension2D,
	}
}

func (d *wgpuDevice) HasFeature(Feature) bool {
	// Neither FeaturePolygonModeLine nor FeaturePolygonModePoint maps onto
	// anything the binding exposes.
	return false
}

func (d *wgpuDevice) MaxTextureDimension2D() uint32 {
	return d.maxDim
}

var wgpuVertexFormats = map[string]wgpu.VertexFormat{
	"float32x2": wgpu.VertexFormatFloat32x2,
	"float32x3": wgpu.VertexFormatFloat32x3,
	"float32x4": wgpu.VertexFormatFloat32x4,
}

// ToWGPUTextureFormat maps a device-neutral format tag onto the wgpu enum.
func ToWGPUTextureFormat(f TextureFormat) wgpu.TextureFormat {
	switch f {
	case TextureFormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case TextureFormatDepth24Plus:
		return wgpu.TextureFormatDepth24Plus
	default:
		return wgpu.TextureFormatUndefined
	}
}

// FromWGPUTextureFormat maps a wgpu surface format back to the neutral tag.
func FromWGPUTextureFormat(f wgpu.TextureFormat) TextureFormat {
	switch f {
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return TextureFormatBGRA8UnormSrgb
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return TextureFormatRGBA8UnormSrgb
	case wgpu.TextureFormatDepth24Plus:
		return TextureFormatDepth24Plus
	default:
		return TextureFormatUnknown
	}
}

func (d *wgpuDevice) CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error) {
	if desc.PolygonMode != PolygonModeFill {
		return nil, fmt.Errorf("polygon mode %d is not supported by this backend", desc.PolygonMode)
	}

	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: desc.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: desc.ShaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module for %s: %w", desc.Label, err)
	}

	var (
		bindGroupLayouts []*wgpu.BindGroupLayout
		uniformBuffer    *wgpu.Buffer
		bindGroup        *wgpu.BindGroup
	)
	if desc.UniformBytes > 0 {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = desc.UniformBytes

		layout, layoutErr := d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   desc.Label + " Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{entry},
		})
		if layoutErr != nil {
			return nil, fmt.Errorf("failed to create bind group layout for %s: %w", desc.Label, layoutErr)
		}
		bindGroupLayouts = append(bindGroupLayouts, layout)

		uniformBuffer, err = d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: desc.Label + " Uniform Buffer",
			Size:  desc.UniformBytes,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create uniform buffer for %s: %w", desc.Label, err)
		}

		bindGroup, err = d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  desc.Label + " Bind Group",
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{
					Binding: 0,
					Buffer:  uniformBuffer,
					Offset:  0,
					Size:    wgpu.WholeSize,
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bind group for %s: %w", desc.Label, err)
		}
	}

	pipelineLayout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline layout for %s: %w", desc.Label, err)
	}

	attributes := make([]wgpu.VertexAttribute, 0, len(desc.VertexLayout.Attributes))
	for _, a := range desc.VertexLayout.Attributes {
		format, ok := wgpuVertexFormats[a.Format]
		if !ok {
			return nil, fmt.Errorf("unknown vertex format %q in %s", a.Format, desc.Label)
		}
		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         format,
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		})
	}

	cullMode := wgpu.CullModeNone
	if desc.CullBack {
		cullMode = wgpu.CullModeBack
	}
	depthCompare := wgpu.CompareFunctionAlways
	if desc.DepthEnabled {
		depthCompare = wgpu.CompareFunctionLess
	}

	created, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: desc.VertexLayout.ArrayStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes:  attributes,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    ToWGPUTextureFormat(desc.SurfaceFormat),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: desc.DepthEnabled,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline for %s: %w", desc.Label, err)
	}

	return &wgpuPipeline{
		label:         desc.Label,
		pipeline:      created,
		uniformBuffer: uniformBuffer,
		bindGroup:     bindGroup,
		queue:         d.queue,
	}, nil
}

func (d *wgpuDevice) CreateMeshBuffers(label string, vertexData []byte, indexData []uint32) (MeshBuffers, error) {
	vertexBuffer, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", label, err)
	}
	d.queue.WriteBuffer(vertexBuffer, 0, vertexData)

	indexBytes := make([]byte, 4*len(indexData))
	for i, idx := range indexData {
		binary.LittleEndian.PutUint32(indexBytes[i*4:], idx)
	}
	indexBuffer, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexBytes)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertexBuffer.Release()
		return nil, fmt.Errorf("failed to create index buffer for %s: %w", label, err)
	}
	d.queue.WriteBuffer(indexBuffer, 0, indexBytes)

	return &wgpuMeshBuffers{
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		indexCount:   uint32(len(indexData)),
	}, nil
}

var _ RenderPipeline = &wgpuPipeline{}

type wgpuPipeline struct {
	label         string
	pipeline      *wgpu.RenderPipeline
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	queue         *wgpu.Queue
}

func (p *wgpuPipeline) Label() string {
	return p.label
}

func (p *wgpuPipeline) WriteUniform(data []byte) {
	if p.uniformBuffer == nil {
		return
	}
	p.queue.WriteBuffer(p.uniformBuffer, 0, data)
}

func (p *wgpuPipeline) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
	}
	p.pipeline.Release()
}

var _ MeshBuffers = &wgpuMeshBuffers{}

type wgpuMeshBuffers struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

func (m *wgpuMeshBuffers) IndexCount() uint32 {
	return m.indexCount
}

func (m *wgpuMeshBuffers) Release() {
	m.vertexBuffer.Release()
	m.indexBuffer.Release()
}

var _ Target = &wgpuTarget{}

type wgpuTarget struct {
	view   *wgpu.TextureView
	width  uint32
	height uint32
}

// NewWGPUTarget wraps an acquired swapchain texture view as a frame target.
func NewWGPUTarget(view *wgpu.TextureView, width, height uint32) Target {
	return &wgpuTarget{view: view, width: width, height: height}
}

func (t *wgpuTarget) Width() uint32 {
	return t.width
}

func (t *wgpuTarget) Height() uint32 {
	return t.height
}

var _ Recorder = &wgpuRecorder{}

type wgpuRecorder struct {
	encoder      *wgpu.CommandEncoder
	depthView    *wgpu.TextureView
	depthCleared bool
}

// NewWGPURecorder wraps a command encoder for one frame. depthView may be nil
// when no depth texture has been allocated yet; the depth attachment is
// cleared on the first pass of the frame and loaded by subsequent passes.
func NewWGPURecorder(encoder *wgpu.CommandEncoder, depthView *wgpu.TextureView) Recorder {
	return &wgpuRecorder{encoder: encoder, depthView: depthView}
}

func (r *wgpuRecorder) BeginPass(target Target, load LoadOp, clearColor Color) PassEncoder {
	t := target.(*wgpuTarget)

	colorLoadOp := wgpu.LoadOpClear
	if load == LoadOpLoad {
		colorLoadOp = wgpu.LoadOpLoad
	}

	descriptor := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    t.view,
				LoadOp:  colorLoadOp,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: clearColor.R,
					G: clearColor.G,
					B: clearColor.B,
					A: clearColor.A,
				},
			},
		},
	}
	if r.depthView != nil {
		depthLoadOp := wgpu.LoadOpLoad
		if !r.depthCleared {
			depthLoadOp = wgpu.LoadOpClear
			r.depthCleared = true
		}
		descriptor.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     depthLoadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}

	pass := r.encoder.BeginRenderPass(descriptor)
	return &wgpuPassEncoder{pass: pass}
}

var _ PassEncoder = &wgpuPassEncoder{}

type wgpuPassEncoder struct {
	pass *wgpu.RenderPassEncoder
}

func (e *wgpuPassEncoder) SetPipeline(p RenderPipeline) {
	wp := p.(*wgpuPipeline)
	e.pass.SetPipeline(wp.pipeline)
	if wp.bindGroup != nil {
		e.pass.SetBindGroup(0, wp.bindGroup, nil)
	}
}

func (e *wgpuPassEncoder) DrawMesh(m MeshBuffers) {
	wm := m.(*wgpuMeshBuffers)
	e.pass.SetVertexBuffer(0, wm.vertexBuffer, 0, wgpu.WholeSize)
	e.pass.SetIndexBuffer(wm.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	e.pass.DrawIndexed(wm.indexCount, 1, 0, 0, 0)
}

func (e *wgpuPassEncoder) End() {
	e.pass.End()
	e.pass.Release()
}
