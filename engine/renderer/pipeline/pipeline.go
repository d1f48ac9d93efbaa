package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

//go:embed geometry.wgsl
var geometryShaderSource string

// GeometryShaderSource returns the built-in WGSL source used by the geometry
// pipeline kind. It expects vertices with a position and a color attribute and
// a view-projection matrix bound at group 0 binding 0.
func GeometryShaderSource() string {
	return geometryShaderSource
}

// Kind identifies one of the fixed pipeline slots the renderer manages.
type Kind int

const (
	// KindGeometry renders mesh geometry with per-vertex color.
	KindGeometry Kind = iota
	// KindTexture renders textured geometry.
	KindTexture
	// KindLighting applies lighting to previously rendered geometry.
	KindLighting
	// KindPostProcess applies full-screen post-processing effects.
	KindPostProcess
)

// String returns the human-readable name of the pipeline kind.
func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindTexture:
		return "texture"
	case KindLighting:
		return "lighting"
	case KindPostProcess:
		return "post-process"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FillMode selects how the rasterizer draws primitives. It is a user-facing
// request; the mode a pipeline actually compiles with depends on device
// feature support and may silently degrade to FillModeFill.
type FillMode int

const (
	// FillModeFill rasterizes solid triangles. Always supported.
	FillModeFill FillMode = iota
	// FillModeWireframe rasterizes triangle edges as lines. Requires the
	// line polygon mode device feature.
	FillModeWireframe
	// FillModeVertex rasterizes only the vertices as points. Requires the
	// point polygon mode device feature.
	FillModeVertex
)

// String returns the human-readable name of the fill mode.
func (m FillMode) String() string {
	switch m {
	case FillModeFill:
		return "fill"
	case FillModeWireframe:
		return "wireframe"
	case FillModeVertex:
		return "vertex"
	default:
		return fmt.Sprintf("fillmode(%d)", int(m))
	}
}

// ResolveFillMode maps a requested fill mode to the mode the device can
// actually honor, falling back to FillModeFill when the required polygon mode
// feature is absent. The fallback is deterministic: the same device and
// request always produce the same effective mode.
//
// Parameters:
//   - dev: the device whose feature set gates line and point rasterization
//   - requested: the fill mode asked for
//
// Returns:
//   - FillMode: the mode the pipeline will compile with
//   - device.PolygonMode: the polygon mode to place in the pipeline descriptor
func ResolveFillMode(dev device.Device, requested FillMode) (FillMode, device.PolygonMode) {
	switch requested {
	case FillModeWireframe:
		if dev.HasFeature(device.FeaturePolygonModeLine) {
			return FillModeWireframe, device.PolygonModeLine
		}
	case FillModeVertex:
		if dev.HasFeature(device.FeaturePolygonModePoint) {
			return FillModeVertex, device.PolygonModePoint
		}
	}
	return FillModeFill, device.PolygonModeFill
}

// pipeline is the implementation of the Pipeline interface. It pairs a
// compiled GPU pipeline with the descriptor it was built from so the slot can
// be rebuilt later with a different fill mode.
type pipeline struct {
	kind              Kind
	descriptor        Descriptor
	requestedFillMode FillMode
	effectiveFillMode FillMode
	raw               device.RenderPipeline
}

var _ Pipeline = &pipeline{}

// Pipeline is one compiled render pipeline managed under a Kind slot.
type Pipeline interface {
	// Kind returns the slot this pipeline occupies.
	Kind() Kind

	// FillMode returns the fill mode that was requested for this pipeline.
	FillMode() FillMode

	// EffectiveFillMode returns the fill mode the pipeline actually compiled
	// with after device feature fallback. It equals FillMode() when the
	// device supports the requested mode.
	EffectiveFillMode() FillMode

	// Raw returns the underlying compiled pipeline handle.
	Raw() device.RenderPipeline

	// WriteUniform replaces the contents of the pipeline's uniform buffer.
	WriteUniform(data []byte)

	// Release frees the GPU objects backing the pipeline.
	Release()
}

func (p *pipeline) Kind() Kind {
	return p.kind
}

func (p *pipeline) FillMode() FillMode {
	return p.requestedFillMode
}

func (p *pipeline) EffectiveFillMode() FillMode {
	return p.effectiveFillMode
}

func (p *pipeline) Raw() device.RenderPipeline {
	return p.raw
}

func (p *pipeline) WriteUniform(data []byte) {
	p.raw.WriteUniform(data)
}

func (p *pipeline) Release() {
	p.raw.Release()
}

// CompilationError wraps a pipeline compilation failure with the kind that
// failed. When a rebuild fails the previously installed pipeline stays live.
type CompilationError struct {
	Kind Kind
	Err  error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile %s pipeline: %v", e.Kind, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
