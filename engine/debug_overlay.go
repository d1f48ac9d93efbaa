package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/SafetImamovic/oxide-sub000/engine/profiler"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/graph"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/ui"
)

// fillModeNames indexes the selector options by pipeline.FillMode value.
var fillModeNames = []string{"fill", "wireframe", "vertex"}

// debugOverlay walks the render graph each frame and describes every pass's
// controls, plus the engine-level fill mode selector and frame stats, onto a
// ui.Builder. When hidden the widgets go to a null builder so passes are
// still described unconditionally; when visible the output is throttled to
// once per second to keep the log readable.
type debugOverlay struct {
	mu sync.Mutex

	visible   bool
	requested pipeline.FillMode
	effective pipeline.FillMode

	logBuilder ui.Builder
	interval   time.Duration
	lastShown  time.Time
}

func newDebugOverlay(visible bool, initialMode pipeline.FillMode) *debugOverlay {
	return &debugOverlay{
		visible:    visible,
		requested:  initialMode,
		effective:  initialMode,
		logBuilder: ui.NewLogBuilder(),
		interval:   time.Second,
	}
}

// Toggle shows or hides the overlay.
func (o *debugOverlay) Toggle() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = !o.visible
}

// FillMode returns the currently requested fill mode.
func (o *debugOverlay) FillMode() pipeline.FillMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.requested
}

// NextFillMode advances the requested fill mode to the next one in the cycle
// and returns it.
func (o *debugOverlay) NextFillMode() pipeline.FillMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requested = pipeline.FillMode((int(o.requested) + 1) % len(fillModeNames))
	return o.requested
}

// SetRequestedFillMode records the mode the user asked for.
func (o *debugOverlay) SetRequestedFillMode(mode pipeline.FillMode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requested = mode
}

// SetEffectiveFillMode records the mode the geometry pipeline actually
// compiled with after feature fallback.
func (o *debugOverlay) SetEffectiveFillMode(mode pipeline.FillMode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.effective = mode
}

// Describe renders the overlay for one frame.
//
// Parameters:
//   - g: the render graph whose passes describe their controls
//   - pipelines: the pipeline manager, for the installed kinds line
//   - prof: the profiler, for the frame stats line
//
// Returns:
//   - pipeline.FillMode: the newly selected fill mode, when changed
//   - bool: true if the builder reported a fill mode selection change
func (o *debugOverlay) Describe(g graph.Graph, pipelines pipeline.Manager, prof *profiler.Profiler) (pipeline.FillMode, bool) {
	o.mu.Lock()
	builder := ui.NewNullBuilder()
	if o.visible && time.Since(o.lastShown) >= o.interval {
		builder = o.logBuilder
		o.lastShown = time.Now()
	}
	requested := o.requested
	effective := o.effective
	o.mu.Unlock()

	builder.Heading("Engine")
	builder.Label(fmt.Sprintf("FPS: %.1f (%.2f ms)", prof.FPS(), prof.FrameTimeMs()))

	kinds := pipelines.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	builder.Label(fmt.Sprintf("Pipelines: %v", names))

	selected := int(requested)
	changed := builder.Selector("Fill mode", fillModeNames, &selected)
	if effective != requested {
		builder.Label(fmt.Sprintf("Fill mode degraded to %s (device feature missing)", effective))
	}

	for _, p := range g.Passes() {
		p.DescribeUI(builder)
	}

	if changed && selected != int(requested) {
		return pipeline.FillMode(selected), true
	}
	return requested, false
}
