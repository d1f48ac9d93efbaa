package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/SafetImamovic/oxide-sub000/common"
	"github.com/SafetImamovic/oxide-sub000/engine/camera"
	"github.com/SafetImamovic/oxide-sub000/engine/config"
	"github.com/SafetImamovic/oxide-sub000/engine/profiler"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/graph"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/resource"
	"github.com/SafetImamovic/oxide-sub000/engine/window"
)

// engine implements the Engine interface.
// Coordinates the window event loop, async GPU initialization, the render
// graph, and the fixed-rate tick loop.
type engine struct {
	mu sync.Mutex

	state State

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	win window.Window
	cfg config.Config

	// backendReady delivers the asynchronously acquired GPU backend to the
	// main loop, standing in for a resumed/device-ready window event.
	backendReady chan renderer.Backend

	rend      renderer.Renderer
	pipelines pipeline.Manager
	rgraph    graph.Graph
	pool      *resource.Pool
	cam       camera.Camera

	prof             *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	tickPool       worker.DynamicWorkerPool
	tickWorkers    int

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	forceFallbackAdapter bool
	presentMode          renderer.PresentMode

	overlay *debugOverlay

	// pendingFillMode holds a requested fill mode change until the start of
	// the next frame, where the geometry pipeline is rebuilt.
	pendingFillMode *pipeline.FillMode

	// pendingWidth/Height capture resizes that arrive before the surface exists.
	pendingWidth  int
	pendingHeight int
}

// Engine is the main entry point. It owns the frame lifecycle: the window
// pumps events on the main thread, GPU initialization completes
// asynchronously, and each loop iteration renders at most one frame.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// State returns the engine's current lifecycle phase.
	State() State

	// Graph returns the render graph. Passes added before Run are executed
	// from the first frame.
	Graph() graph.Graph

	// Pool returns the shared mesh pool. Meshes added at any time are
	// uploaded at the start of the next frame.
	Pool() *resource.Pool

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Pipelines returns the pipeline manager. Nil until the engine reaches
	// StateReady.
	Pipelines() pipeline.Manager

	// SetFillMode requests a new polygon fill mode. The geometry pipeline is
	// rebuilt at the start of the next frame; the mode may degrade to solid
	// fill when the device lacks the required feature.
	SetFillMode(mode pipeline.FillMode)

	// ToggleDebugOverlay shows or hides the debug overlay.
	ToggleDebugOverlay()

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Ticks are dispatched through the engine's worker pool, so the callback
	// must be safe to run off the main thread.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Run starts GPU initialization and the main loop. Blocks until the
	// window closes, then tears down GPU resources.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		state:           StateUninitialized,
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		backendReady:    make(chan renderer.Backend, 1),
		pool:            resource.NewPool(),
		rgraph:          graph.New(),
		cam:             camera.NewCamera(),
		prof:            profiler.NewProfiler(),
		cfg:             config.Default(),
		engineTickRate:  time.Second / 60,
		tickWorkers:     2,
		presentMode:     renderer.PresentModeVSync,
	}

	for _, opt := range options {
		opt(e)
	}

	e.overlay = newDebugOverlay(e.cfg.EnableDebug, e.cfg.ParseFillMode())

	if e.win != nil {
		e.win.SetResizeCallback(e.onResize)
		e.win.SetKeyDownCallback(e.onKeyDown)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.win
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *engine) Graph() graph.Graph {
	return e.rgraph
}

func (e *engine) Pool() *resource.Pool {
	return e.pool
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Pipelines() pipeline.Manager {
	return e.pipelines
}

func (e *engine) SetFillMode(mode pipeline.FillMode) {
	e.mu.Lock()
	e.pendingFillMode = &mode
	e.mu.Unlock()
}

func (e *engine) ToggleDebugOverlay() {
	e.overlay.Toggle()
}

func (e *engine) Run() {
	if e.win == nil {
		log.Fatal("engine requires a window; use WithWindow")
	}

	e.running = true
	e.setState(StateInitializing)
	e.handle()

	e.win.SetUpdateCallback(e.update)
	e.win.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.teardown()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the init, tick, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleInit()
	go e.handleTick()
	go e.handleQuit()
}

// handleInit acquires the GPU adapter and device off the main thread and
// hands the backend to the main loop through backendReady. A failure here is
// fatal: without a device there is nothing to render with.
func (e *engine) handleInit() {
	defer e.wg.Done()

	backend, err := renderer.NewWGPUBackend(e.win.SurfaceDescriptor(), e.forceFallbackAdapter)
	if err != nil {
		log.Printf("GPU initialization failed: %v", err)
		e.signalQuit()
		return
	}

	select {
	case e.backendReady <- backend:
	case <-e.quitChannel:
		backend.Release()
	}
}

// handleTick runs the fixed-rate tick loop in its own goroutine. Each tick's
// callback is dispatched through the worker pool; a WaitGroup provides the
// per-tick barrier since the pool's own Wait blocks until workers idle-exit.
// Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	e.tickPool = worker.NewDynamicWorkerPool(e.tickWorkers, 256, 1*time.Second)

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	taskID := 0

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback == nil {
				continue
			}

			var wg sync.WaitGroup
			wg.Add(1)
			id := taskID
			taskID++
			e.tickPool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					e.tickCallback(dt)
					return nil, nil
				},
			})
			wg.Wait()
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// update runs once per window loop iteration on the main thread. During
// initialization it polls for the backend; afterwards it renders at most one
// frame per iteration.
func (e *engine) update() {
	switch e.State() {
	case StateInitializing:
		select {
		case backend := <-e.backendReady:
			e.finishInit(backend)
		default:
		}
	case StateReady:
		e.renderFrame()
	}
}

// finishInit configures the surface, builds the pipeline manager, and moves
// the engine to StateReady. Runs on the main thread once the device exists.
func (e *engine) finishInit(backend renderer.Backend) {
	e.rend = renderer.NewRenderer(backend, renderer.WithPresentMode(e.presentMode))

	width := common.Coalesce(e.pendingWidth, e.win.Width())
	height := common.Coalesce(e.pendingHeight, e.win.Height())
	e.rend.Resize(width, height)
	if height > 0 {
		e.cam.SetAspect(float32(width) / float32(height))
	}

	e.pipelines = pipeline.NewManager(e.rend.Device())

	requested := e.overlay.FillMode()
	effective, err := e.pipelines.Create(pipeline.KindGeometry, pipeline.NewDescriptor(
		pipeline.WithShaderSource(pipeline.GeometryShaderSource(), "vs_main", "fs_main"),
		pipeline.WithSurfaceFormat(e.rend.SurfaceFormat()),
		pipeline.WithVertexLayout(resource.VertexLayout()),
		pipeline.WithFillMode(requested),
		pipeline.WithDepthEnabled(true),
		pipeline.WithUniformBytes(camera.UniformSize),
	))
	if err != nil {
		log.Printf("geometry pipeline creation failed: %v", err)
		e.signalQuit()
		return
	}
	if effective != requested {
		log.Printf("fill mode %s unsupported by device, using %s", requested, effective)
	}
	e.overlay.SetEffectiveFillMode(effective)

	e.setState(StateReady)
	log.Printf("engine ready: %dx%d surface", width, height)
}

// renderFrame renders one frame. Surface problems are transient and skip the
// frame; everything else that fails here is fatal.
func (e *engine) renderFrame() {
	if !e.rend.SurfaceConfigured() {
		return
	}

	e.setState(StateRendering)
	defer e.setState(StateReady)

	frameStart := time.Now()

	if err := e.pool.UploadAll(e.rend.Device()); err != nil {
		log.Printf("mesh upload failed: %v", err)
		e.signalQuit()
		return
	}

	e.applyPendingFillMode()

	target, rec, err := e.rend.BeginFrame()
	if err != nil {
		switch {
		case errors.Is(err, device.ErrSurfaceOutdated):
			// The surface no longer matches the window, usually mid-resize.
			// The next resize callback reconfigures it; skip this frame.
			return
		case errors.Is(err, device.ErrSurfaceNotConfigured):
			return
		default:
			log.Printf("frame acquisition failed: %v", err)
			e.signalQuit()
			return
		}
	}

	e.pipelines.Get(pipeline.KindGeometry).WriteUniform(e.cam.MarshalUniform())

	e.rgraph.Execute(target, rec, e.pipelines)

	if mode, changed := e.overlay.Describe(e.rgraph, e.pipelines, e.prof); changed {
		e.SetFillMode(mode)
	}

	e.rend.EndFrame()
	e.rend.Present()

	if e.profilingEnabled {
		e.prof.Tick()
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// applyPendingFillMode rebuilds the geometry pipeline when a fill mode change
// was requested since the last frame. The rebuild happens between frames so
// the old pipeline is never replaced mid-recording.
func (e *engine) applyPendingFillMode() {
	e.mu.Lock()
	pending := e.pendingFillMode
	e.pendingFillMode = nil
	e.mu.Unlock()

	if pending == nil {
		return
	}

	effective, err := e.pipelines.Rebuild(pipeline.KindGeometry, *pending)
	if err != nil {
		// The previous pipeline is still installed; rendering continues.
		log.Printf("pipeline rebuild failed, keeping previous pipeline: %v", err)
		return
	}
	if effective != *pending {
		log.Printf("fill mode %s unsupported by device, using %s", *pending, effective)
	}
	e.overlay.SetRequestedFillMode(*pending)
	e.overlay.SetEffectiveFillMode(effective)
}

// onResize feeds window size changes to the renderer. Before the renderer
// exists the size is remembered and applied when initialization finishes.
func (e *engine) onResize(width, height int) {
	if e.State() == StateTornDown {
		return
	}
	if e.rend == nil {
		e.pendingWidth = width
		e.pendingHeight = height
		return
	}
	e.rend.Resize(width, height)
	if height > 0 {
		e.cam.SetAspect(float32(width) / float32(height))
	}
}

// onKeyDown maps the debug key bindings: the toggle key shows and hides the
// overlay, F cycles the fill mode, and 1–3 select one directly.
func (e *engine) onKeyDown(keyCode uint32) {
	toggleKey := uint32(common.KeyD)
	if e.cfg.DebugToggleKey != 0 {
		toggleKey = uint32(e.cfg.DebugToggleKey)
	}

	switch keyCode {
	case toggleKey:
		e.overlay.Toggle()
	case common.KeyF:
		e.SetFillMode(e.overlay.NextFillMode())
	case common.Key1:
		e.SetFillMode(pipeline.FillModeFill)
	case common.Key2:
		e.SetFillMode(pipeline.FillModeWireframe)
	case common.Key3:
		e.SetFillMode(pipeline.FillModeVertex)
	}
}

// teardown releases GPU resources after the loop exits. Terminal: the engine
// cannot be restarted afterwards.
func (e *engine) teardown() {
	if e.pool != nil {
		e.pool.Release()
	}
	if e.pipelines != nil {
		e.pipelines.Release()
	}
	if e.rend != nil {
		e.rend.Release()
	}
	e.setState(StateTornDown)
	log.Println("engine torn down")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}
