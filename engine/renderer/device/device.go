package device

// Feature identifies an optional GPU capability that pipelines may depend on.
type Feature int

const (
	// FeaturePolygonModeLine enables line (wireframe) rasterization.
	FeaturePolygonModeLine Feature = iota
	// FeaturePolygonModePoint enables point (vertex) rasterization.
	FeaturePolygonModePoint
)

// PolygonMode selects how the rasterizer fills primitives.
type PolygonMode int

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

// TextureFormat is the pixel format of a render target.
type TextureFormat int

const (
	TextureFormatUnknown TextureFormat = iota
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGBA8UnormSrgb
	TextureFormatDepth24Plus
)

// LoadOp selects what happens to an attachment when a render pass begins.
type LoadOp int

const (
	// LoadOpClear discards the previous contents and fills with a clear value.
	LoadOpClear LoadOp = iota
	// LoadOpLoad preserves the previous contents.
	LoadOpLoad
)

// Color is an RGBA clear value in linear space, components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// VertexAttribute describes one field of a vertex.
type VertexAttribute struct {
	// Format is a device-neutral format tag, e.g. "float32x3".
	Format string
	// Offset is the byte offset of the attribute within a vertex.
	Offset uint64
	// ShaderLocation is the @location index in the vertex shader.
	ShaderLocation uint32
}

// VertexBufferLayout describes the memory layout of a vertex buffer.
type VertexBufferLayout struct {
	ArrayStride uint64
	Attributes  []VertexAttribute
}

// RenderPipelineDescriptor carries everything a device needs to compile one
// render pipeline. The descriptor is immutable once handed to CreateRenderPipeline.
type RenderPipelineDescriptor struct {
	Label              string
	ShaderSource       string
	VertexEntryPoint   string
	FragmentEntryPoint string
	SurfaceFormat      TextureFormat
	VertexLayout       VertexBufferLayout
	PolygonMode        PolygonMode
	DepthEnabled       bool
	CullBack           bool
	// UniformBytes, when non-zero, requests a uniform buffer of that size bound
	// at group 0 binding 0, writable through RenderPipeline.WriteUniform.
	UniformBytes uint64
}

// RenderPipeline is a compiled pipeline handle.
type RenderPipeline interface {
	// Label returns the descriptor label the pipeline was compiled with.
	Label() string
	// WriteUniform replaces the contents of the pipeline's uniform buffer.
	// It is a no-op when the pipeline was created with UniformBytes == 0.
	WriteUniform(data []byte)
	// Release frees the GPU objects backing the pipeline.
	Release()
}

// MeshBuffers holds the GPU-resident vertex and index buffers of one mesh.
type MeshBuffers interface {
	// IndexCount returns the number of indices to draw.
	IndexCount() uint32
	// Release frees the underlying buffers.
	Release()
}

// Target is an acquired surface texture that passes render into.
type Target interface {
	// Width returns the pixel width of the target.
	Width() uint32
	// Height returns the pixel height of the target.
	Height() uint32
}

// PassEncoder records draw commands inside one render pass.
type PassEncoder interface {
	// SetPipeline binds a compiled pipeline, along with any internal bind
	// groups the pipeline carries.
	SetPipeline(p RenderPipeline)
	// DrawMesh binds the mesh's buffers and issues one indexed draw.
	DrawMesh(m MeshBuffers)
	// End closes the pass. No further commands may be recorded after End.
	End()
}

// Recorder accumulates render passes for one frame's command submission.
type Recorder interface {
	// BeginPass opens a render pass against the target. When load is
	// LoadOpClear the target is cleared to clearColor first; LoadOpLoad
	// composites over whatever earlier passes produced.
	BeginPass(target Target, load LoadOp, clearColor Color) PassEncoder
}

// Device is the narrow GPU surface the rendering layers build against.
// The production implementation wraps a wgpu device; tests substitute
// instrumented fakes.
type Device interface {
	// HasFeature reports whether the adapter supports an optional capability.
	HasFeature(f Feature) bool
	// MaxTextureDimension2D returns the largest supported surface extent.
	MaxTextureDimension2D() uint32
	// CreateRenderPipeline compiles a pipeline from the descriptor. A nil
	// pipeline is never returned alongside a nil error.
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	// CreateMeshBuffers uploads vertex and index data and returns the handles.
	CreateMeshBuffers(label string, vertexData []byte, indexData []uint32) (MeshBuffers, error)
}
