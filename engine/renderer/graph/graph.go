package graph

import (
	"fmt"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/ui"
)

// Pass is one node of the render graph. A pass records GPU commands for the
// frame when enabled and describes its tweakable state to the debug overlay.
type Pass interface {
	// Name returns the pass's display name, shown in the debug overlay.
	Name() string

	// Enabled reports whether the pass participates in frame execution.
	Enabled() bool

	// SetEnabled toggles the pass's participation in frame execution.
	SetEnabled(enabled bool)

	// DescribeUI renders the pass's controls onto the overlay builder. It is
	// called every frame regardless of the enabled state so disabled passes
	// can still be re-enabled from the overlay.
	DescribeUI(b ui.Builder)

	// Record encodes the pass's GPU commands for one frame. Passes must not
	// fail the frame: conditions like meshes that have not finished their
	// upload are skipped, not errors.
	Record(target device.Target, rec device.Recorder, pipelines pipeline.Manager)
}

// graph is the implementation of the Graph interface.
type graph struct {
	passes []Pass
}

var _ Graph = &graph{}

// Graph is an ordered list of render passes executed back to front: each
// pass composites over the output of the passes before it. Order is explicit
// and fully caller-controlled; the graph performs no dependency analysis.
type Graph interface {
	// AddPass appends a pass to the end of the execution order.
	AddPass(p Pass)

	// Execute records every enabled pass in order into the recorder.
	// Disabled passes are skipped without side effects.
	Execute(target device.Target, rec device.Recorder, pipelines pipeline.Manager)

	// Reorder swaps the passes at positions i and j. It panics when either
	// index is out of range; callers drive reordering from UI over the
	// current pass list, so a bad index is a programming error.
	Reorder(i, j int)

	// Passes returns the passes in execution order. The slice is shared;
	// callers must not mutate it.
	Passes() []Pass

	// Len returns the number of passes in the graph.
	Len() int
}

// New creates an empty render graph.
func New() Graph {
	return &graph{}
}

func (g *graph) AddPass(p Pass) {
	g.passes = append(g.passes, p)
}

func (g *graph) Execute(target device.Target, rec device.Recorder, pipelines pipeline.Manager) {
	for _, p := range g.passes {
		if !p.Enabled() {
			continue
		}
		p.Record(target, rec, pipelines)
	}
}

func (g *graph) Reorder(i, j int) {
	if i < 0 || i >= len(g.passes) || j < 0 || j >= len(g.passes) {
		panic(fmt.Sprintf("pass index out of range: reorder(%d, %d) with %d passes", i, j, len(g.passes)))
	}
	g.passes[i], g.passes[j] = g.passes[j], g.passes[i]
}

func (g *graph) Passes() []Pass {
	return g.passes
}

func (g *graph) Len() int {
	return len(g.passes)
}
