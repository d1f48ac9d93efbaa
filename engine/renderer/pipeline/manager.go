package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// manager is the implementation of the Manager interface.
type manager struct {
	mu        sync.Mutex
	device    device.Device
	pipelines map[Kind]*pipeline
}

var _ Manager = &manager{}

// Manager owns the set of compiled render pipelines, keyed by Kind. Every
// compilation path, first build and rebuild alike, runs the same fill mode
// feature fallback, so an unsupported mode degrades to solid fill instead of
// failing device validation.
type Manager interface {
	// Create compiles a pipeline for the kind from the descriptor and
	// installs it, replacing any pipeline already in the slot.
	//
	// Parameters:
	//   - kind: the slot to install the pipeline into
	//   - desc: the pipeline descriptor; its FillMode is a request, not a guarantee
	//
	// Returns:
	//   - FillMode: the effective fill mode the pipeline compiled with
	//   - error: a *CompilationError if the device rejected the pipeline
	Create(kind Kind, desc Descriptor) (FillMode, error)

	// Get returns the pipeline for the kind. It panics when no pipeline has
	// been created for the kind; the fixed set of slots is established at
	// startup and a missing one is a programming error, not a runtime
	// condition.
	Get(kind Kind) Pipeline

	// Has reports whether a pipeline is installed for the kind.
	Has(kind Kind) bool

	// Kinds returns the installed kinds in ascending order.
	Kinds() []Kind

	// Rebuild recompiles the kind's pipeline with a new fill mode, reusing
	// the rest of its stored descriptor. The swap is atomic: the old pipeline
	// stays installed until the new one compiles, and stays installed if
	// compilation fails.
	//
	// Parameters:
	//   - kind: the slot to rebuild
	//   - mode: the newly requested fill mode
	//
	// Returns:
	//   - FillMode: the effective fill mode after feature fallback
	//   - error: a *CompilationError if the device rejected the new pipeline
	Rebuild(kind Kind, mode FillMode) (FillMode, error)

	// EffectiveFillMode returns the fill mode the kind's pipeline actually
	// compiled with. It panics when the kind has no pipeline.
	EffectiveFillMode(kind Kind) FillMode

	// Release frees every installed pipeline. The manager is empty afterwards.
	Release()
}

// NewManager creates a pipeline manager compiling against the given device.
func NewManager(dev device.Device) Manager {
	return &manager{
		device:    dev,
		pipelines: make(map[Kind]*pipeline),
	}
}

// compile resolves the fill mode against device features and asks the device
// for a pipeline. It does not touch the installed set.
func (m *manager) compile(kind Kind, desc Descriptor) (*pipeline, error) {
	effective, polygonMode := ResolveFillMode(m.device, desc.FillMode)

	label := desc.Label
	if label == "" {
		label = kind.String()
	}

	raw, err := m.device.CreateRenderPipeline(&device.RenderPipelineDescriptor{
		Label:              label,
		ShaderSource:       desc.ShaderSource,
		VertexEntryPoint:   desc.VertexEntryPoint,
		FragmentEntryPoint: desc.FragmentEntryPoint,
		SurfaceFormat:      desc.SurfaceFormat,
		VertexLayout:       desc.VertexLayout,
		PolygonMode:        polygonMode,
		DepthEnabled:       desc.DepthEnabled,
		CullBack:           desc.CullBack,
		UniformBytes:       desc.UniformBytes,
	})
	if err != nil {
		return nil, &CompilationError{Kind: kind, Err: err}
	}

	return &pipeline{
		kind:              kind,
		descriptor:        desc,
		requestedFillMode: desc.FillMode,
		effectiveFillMode: effective,
		raw:               raw,
	}, nil
}

func (m *manager) Create(kind Kind, desc Descriptor) (FillMode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created, err := m.compile(kind, desc)
	if err != nil {
		return FillModeFill, err
	}

	if old, ok := m.pipelines[kind]; ok {
		old.Release()
	}
	m.pipelines[kind] = created

	return created.effectiveFillMode, nil
}

func (m *manager) Get(kind Kind) Pipeline {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pipelines[kind]
	if !ok {
		panic(fmt.Sprintf("no %s pipeline has been created", kind))
	}
	return p
}

func (m *manager) Has(kind Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.pipelines[kind]
	return ok
}

func (m *manager) Kinds() []Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	kinds := make([]Kind, 0, len(m.pipelines))
	for k := range m.pipelines {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (m *manager) Rebuild(kind Kind, mode FillMode) (FillMode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.pipelines[kind]
	if !ok {
		panic(fmt.Sprintf("no %s pipeline has been created", kind))
	}

	desc := old.descriptor
	desc.FillMode = mode

	created, err := m.compile(kind, desc)
	if err != nil {
		return old.effectiveFillMode, err
	}

	old.Release()
	m.pipelines[kind] = created

	return created.effectiveFillMode, nil
}

func (m *manager) EffectiveFillMode(kind Kind) FillMode {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pipelines[kind]
	if !ok {
		panic(fmt.Sprintf("no %s pipeline has been created", kind))
	}
	return p.effectiveFillMode
}

func (m *manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.pipelines {
		p.Release()
	}
	m.pipelines = make(map[Kind]*pipeline)
}
