package engine

import (
	"time"

	"github.com/SafetImamovic/oxide-sub000/engine/camera"
	"github.com/SafetImamovic/oxide-sub000/engine/config"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/graph"
	"github.com/SafetImamovic/oxide-sub000/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.win = w
	}
}

// WithConfig applies loaded settings: the startup fill mode, debug overlay
// visibility, toggle key binding, and tick rate.
//
// Parameters:
//   - cfg: the settings to apply
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
		if cfg.TickRate > 0 {
			e.engineTickRate = time.Second / time.Duration(cfg.TickRate)
		}
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithTickWorkers sets the number of workers in the tick dispatch pool.
//
// Parameters:
//   - workers: the worker count (values < 1 are treated as 1)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickWorkers(workers int) EngineBuilderOption {
	return func(e *engine) {
		if workers < 1 {
			workers = 1
		}
		e.tickWorkers = workers
	}
}

// WithPass appends a render pass to the graph during engine construction.
// Passes execute in the order they were added.
//
// Parameters:
//   - p: the pass to append
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPass(p graph.Pass) EngineBuilderOption {
	return func(e *engine) {
		e.rgraph.AddPass(p)
	}
}

// WithCamera sets a pre-configured camera for the engine to use.
//
// Parameters:
//   - c: the camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = c
	}
}

// WithPresentMode sets the surface present mode used once the renderer exists.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPresentMode(mode renderer.PresentMode) EngineBuilderOption {
	return func(e *engine) {
		e.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.forceFallbackAdapter = force
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
