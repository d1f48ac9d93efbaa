package pipeline

import "github.com/SafetImamovic/oxide-sub000/engine/renderer/device"

// Descriptor holds everything needed to compile one pipeline slot. The
// manager keeps the descriptor after compilation so the slot can be rebuilt
// with a different fill mode without the caller restating the rest.
type Descriptor struct {
	// Label names the pipeline in device debug output. Defaults to the kind name.
	Label string
	// ShaderSource is the WGSL source containing both entry points.
	ShaderSource string
	// VertexEntryPoint is the vertex shader entry function name.
	VertexEntryPoint string
	// FragmentEntryPoint is the fragment shader entry function name.
	FragmentEntryPoint string
	// SurfaceFormat is the color target format the pipeline renders to.
	SurfaceFormat device.TextureFormat
	// VertexLayout describes the vertex buffer the pipeline consumes.
	VertexLayout device.VertexBufferLayout
	// FillMode is the requested rasterization mode, subject to feature fallback.
	FillMode FillMode
	// DepthEnabled turns on depth testing and writing.
	DepthEnabled bool
	// CullBack culls back-facing triangles when set.
	CullBack bool
	// UniformBytes, when non-zero, allocates a uniform buffer of that size at
	// group 0 binding 0.
	UniformBytes uint64
}

// DescriptorOption is a functional option used to configure a Descriptor during construction.
type DescriptorOption func(*Descriptor)

// NewDescriptor builds a pipeline descriptor from the given options.
//
// Parameters:
//   - opts: the options to apply to the descriptor
//
// Returns:
//   - Descriptor: the configured descriptor
func NewDescriptor(opts ...DescriptorOption) Descriptor {
	d := Descriptor{
		VertexEntryPoint:   "vs_main",
		FragmentEntryPoint: "fs_main",
		FillMode:           FillModeFill,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithLabel sets the debug label for the pipeline.
//
// Parameters:
//   - label: the debug label to use
//
// Returns:
//   - DescriptorOption: a function that sets the label on the descriptor
func WithLabel(label string) DescriptorOption {
	return func(d *Descriptor) {
		d.Label = label
	}
}

// WithShaderSource sets the WGSL source and its entry points.
//
// Parameters:
//   - source: the WGSL source code
//   - vertexEntry: the vertex shader entry function name
//   - fragmentEntry: the fragment shader entry function name
//
// Returns:
//   - DescriptorOption: a function that sets the shader source on the descriptor
func WithShaderSource(source, vertexEntry, fragmentEntry string) DescriptorOption {
	return func(d *Descriptor) {
		d.ShaderSource = source
		d.VertexEntryPoint = vertexEntry
		d.FragmentEntryPoint = fragmentEntry
	}
}

// WithSurfaceFormat sets the color target format the pipeline renders to.
//
// Parameters:
//   - format: the surface texture format
//
// Returns:
//   - DescriptorOption: a function that sets the surface format on the descriptor
func WithSurfaceFormat(format device.TextureFormat) DescriptorOption {
	return func(d *Descriptor) {
		d.SurfaceFormat = format
	}
}

// WithVertexLayout sets the vertex buffer layout the pipeline consumes.
//
// Parameters:
//   - layout: the vertex buffer layout
//
// Returns:
//   - DescriptorOption: a function that sets the vertex layout on the descriptor
func WithVertexLayout(layout device.VertexBufferLayout) DescriptorOption {
	return func(d *Descriptor) {
		d.VertexLayout = layout
	}
}

// WithFillMode sets the requested rasterization fill mode.
//
// Parameters:
//   - mode: the fill mode to request
//
// Returns:
//   - DescriptorOption: a function that sets the fill mode on the descriptor
func WithFillMode(mode FillMode) DescriptorOption {
	return func(d *Descriptor) {
		d.FillMode = mode
	}
}

// WithDepthEnabled sets whether depth testing and writing are enabled.
//
// Parameters:
//   - enabled: a boolean indicating whether depth should be enabled
//
// Returns:
//   - DescriptorOption: a function that sets the depth state on the descriptor
func WithDepthEnabled(enabled bool) DescriptorOption {
	return func(d *Descriptor) {
		d.DepthEnabled = enabled
	}
}

// WithCullBack sets whether back-facing triangles are culled.
//
// Parameters:
//   - enabled: a boolean indicating whether back-face culling should be enabled
//
// Returns:
//   - DescriptorOption: a function that sets the cull state on the descriptor
func WithCullBack(enabled bool) DescriptorOption {
	return func(d *Descriptor) {
		d.CullBack = enabled
	}
}

// WithUniformBytes allocates a uniform buffer of the given size at group 0
// binding 0, writable through Pipeline.WriteUniform.
//
// Parameters:
//   - size: the uniform buffer size in bytes
//
// Returns:
//   - DescriptorOption: a function that sets the uniform size on the descriptor
func WithUniformBytes(size uint64) DescriptorOption {
	return func(d *Descriptor) {
		d.UniformBytes = size
	}
}
