package shadow

import (
	"fmt"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// State is the scheduler's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStepping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStepping:
		return "stepping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// SetupFunc creates the initial conditions of a system. It runs on Init and
// again after every restarting Reset.
type SetupFunc func(s *System) error

// FrameCompleteFunc receives each recorded frame when a frame limit is set.
// rec is nil when recording is disabled.
type FrameCompleteFunc func(frame int64, rec *FrameRecord)

// Option configures a System.
type Option func(*System)

func WithLogger(log *zap.Logger) Option {
	return func(s *System) { s.log = log }
}

// WithHost sets the next-frame facility. The default is a ManualHost.
func WithHost(host FrameHost) Option {
	return func(s *System) { s.host = host }
}

func WithFeatures(f Features) Option {
	return func(s *System) { s.features = f }
}

func WithViewport(v Viewport) Option {
	return func(s *System) { s.viewport = v }
}

// WithTotalFrames stops the scheduler once the clock reaches n.
func WithTotalFrames(n int64) Option {
	return func(s *System) { s.totalFrames = n }
}

// WithRecording enables the recorder, optionally windowed to [start, end].
// Pass -1 for either bound to record every frame.
func WithRecording(start, end int64) Option {
	return func(s *System) {
		s.recorder.Enabled = true
		s.recorder.StartFrame = start
		s.recorder.EndFrame = end
	}
}

// WithTrace logs per-phase durations at debug level.
func WithTrace(trace bool) Option {
	return func(s *System) { s.trace = trace }
}

func WithFrameComplete(fn FrameCompleteFunc) Option {
	return func(s *System) { s.frameComplete = fn }
}

func WithTotalFramesCallback(fn func()) Option {
	return func(s *System) { s.totalFramesDone = fn }
}

func WithOverlay(o Overlay) Option {
	return func(s *System) { s.overlay = o }
}

// WithResizeSettle sets how long resizing must be quiet before stepping
// resumes.
func WithResizeSettle(d time.Duration) Option {
	return func(s *System) { s.settle = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *System) { s.now = now }
}

// WithNoStartLoop makes Init skip the first tick; call Start later.
func WithNoStartLoop() Option {
	return func(s *System) { s.noStartLoop = true }
}

// System owns the registry, name cache, id allocator and per-world pools, and
// drives the frame pipeline. All methods except those of Commands must be
// called from the goroutine running the host.
type System struct {
	log             *zap.Logger
	host            FrameHost
	features        Features
	viewport        Viewport
	overlay         Overlay
	now             func() time.Time
	settle          time.Duration
	totalFrames     int64
	trace           bool
	noStartLoop     bool
	frameComplete   FrameCompleteFunc
	totalFramesDone func()

	registry  Registry
	worlds    []*World
	cache     *NameCache
	items     *intmap.Map[uint64, Thing]
	ids       IDAllocator
	factories *Factories
	recorder  *Recorder
	commands  Commands
	input     InputState
	timer     *phaseTimer
	frame     Frame

	setup      SetupFunc
	state      State
	stepping   bool
	clock      int64
	resizeTime time.Time
}

func NewSystem(opts ...Option) *System {
	s := &System{
		log:         zap.NewNop(),
		host:        &ManualHost{},
		features:    DefaultFeatures,
		viewport:    FixedViewport{W: 800, H: 600},
		now:         time.Now,
		settle:      100 * time.Millisecond,
		totalFrames: -1,
		cache:       NewNameCache(),
		items:       intmap.New[uint64, Thing](1024),
		factories:   NewFactories(),
		recorder:    NewRecorder(),
		timer:       newPhaseTimer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.frame = Frame{Input: &s.input, System: s}
	return s
}

// Init registers a default world when none was added, runs setup and, unless
// WithNoStartLoop was given, starts the loop.
func (s *System) Init(setup SetupFunc) error {
	if !s.features.BoxShadow {
		return fmt.Errorf("init: box shadow: %w", ErrUnsupportedPlatformFeature)
	}
	if len(s.worlds) == 0 {
		s.AddWorld(nil, WorldOptions{})
	}
	s.setup = setup
	if err := s.runSetup(); err != nil {
		return err
	}
	if s.noStartLoop {
		return nil
	}
	return s.Start()
}

func (s *System) runSetup() error {
	if s.setup == nil {
		return nil
	}
	if err := s.setup(s); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	return nil
}

// Start runs the first tick. Later ticks are driven by the host.
func (s *System) Start() error {
	if s.state == StateRunning {
		return nil
	}
	s.state = StateRunning
	return s.tick()
}

// AddWorld registers a world that commits to surface. A nil surface selects a
// MemorySurface. Worlds survive Reset with their ids, so ids still held by a
// live world are skipped.
func (s *System) AddWorld(surface Surface, opts WorldOptions) *World {
	vw, vh := s.viewport.Size()
	seq := s.ids.Next()
	for s.worldSeqTaken(seq) {
		seq = s.ids.Next()
	}
	w := newWorld(seq, surface, opts, vw, vh)
	s.registry.Append(w)
	s.worlds = append(s.worlds, w)
	s.cache.Touch(w)
	return w
}

func (s *System) worldSeqTaken(seq uint64) bool {
	for _, w := range s.worlds {
		if w.seq == seq {
			return true
		}
	}
	return false
}

// Add creates an item of kind name in opts.World, or in the first world when
// unset. A pooled item of the same kind is reused before a new one is built.
func (s *System) Add(name string, opts Options) (Thing, error) {
	world := opts.World
	if world == nil {
		world = s.FirstWorld()
	}
	if world == nil || !slices.Contains(s.worlds, world) {
		return nil, fmt.Errorf("add %s: %w", name, ErrInvalidWorld)
	}
	opts.World = world

	t := world.pool.Acquire(name)
	if t == nil {
		var err error
		if t, err = s.factories.New(name); err != nil {
			return nil, err
		}
		t.Base().bind(name, s.ids.Next(), world, s.log)
	}

	t.Reset(opts)
	if err := t.Init(opts); err != nil {
		world.pool.Recycle(t)
		return nil, fmt.Errorf("init %s: %w", t.ID(), err)
	}

	s.registry.Append(t)
	s.cache.Touch(t)
	s.items.Put(t.Seq(), t)
	return t, nil
}

// Destroy retires t into its world's pool. It reports false when t is not
// live.
func (s *System) Destroy(t Thing) bool {
	if !s.registry.Remove(t) {
		return false
	}
	s.cache.SetActive(t, false)
	s.items.Del(t.Seq())
	if w := t.Base().world; w != nil {
		w.pool.Recycle(t)
	}
	return true
}

func (s *System) tick() error {
	if s.state == StateIdle || s.state == StateStopped {
		return nil
	}

	if !s.resizeTime.IsZero() && s.now().Sub(s.resizeTime) > s.settle {
		s.resizeTime = time.Time{}
		s.stepping = false
		for _, w := range s.worlds {
			w.paused = false
		}
		if w := s.FirstWorld(); w != nil && w.AfterResize != nil {
			w.AfterResize()
		}
	}

	if s.totalFrames > -1 && s.clock >= s.totalFrames {
		s.state = StateStopped
		s.log.Info("rendered all frames", zap.Int64("total", s.totalFrames))
		if s.totalFramesDone != nil {
			s.totalFramesDone()
		}
		return nil
	}

	if err := s.commands.flush(s); err != nil {
		s.state = StateStopped
		return fmt.Errorf("frame %d: commands: %w", s.clock, err)
	}

	s.recorder.begin(s.clock)
	s.frame.Clock = s.clock

	_ = s.timed(PhaseStep, s.stepPhase)
	if err := s.timed(PhaseDraw, s.drawPhase); err != nil {
		s.discardBuffers()
		s.state = StateStopped
		s.log.Error("draw failed", zap.Int64("frame", s.clock), zap.Error(err))
		return fmt.Errorf("frame %d: %w", s.clock, err)
	}
	_ = s.timed(PhaseCommit, s.commitPhase)

	s.completeFrame()

	s.clock++
	s.host.RequestFrame(s.tick)
	return nil
}

func (s *System) stepPhase() error {
	return s.registry.EachReverse(func(e Entity) error {
		if st, ok := e.(Stepper); ok {
			if w, owned := e.Owner(); !owned || !w.paused {
				st.Step(&s.frame)
			}
		}
		if t, ok := e.(Thing); ok {
			s.recorder.capture(t.Base())
		}
		return nil
	})
}

func (s *System) drawPhase() error {
	return s.registry.EachReverse(func(e Entity) error {
		t, ok := e.(Thing)
		if !ok {
			return nil
		}
		it := t.Base()
		if !it.Drawable() {
			return nil
		}
		buf, err := AppendShadow(it.world.buffer, it, s.features)
		if err != nil {
			return err
		}
		it.world.buffer = buf
		return nil
	})
}

func (s *System) commitPhase() error {
	for i := len(s.worlds) - 1; i >= 0; i-- {
		s.worlds[i].commit()
	}
	return nil
}

func (s *System) discardBuffers() {
	for _, w := range s.worlds {
		w.buffer = w.buffer[:0]
	}
}

func (s *System) completeFrame() {
	rec := s.recorder.finish()
	if s.totalFrames < 0 {
		if rec != nil {
			s.recorder.keep(*rec)
		}
		return
	}
	if !s.recorder.InWindow(s.clock) {
		return
	}
	if s.frameComplete != nil {
		s.frameComplete(s.clock, rec)
		return
	}
	s.log.Debug("rendered frame", zap.Int64("frame", s.clock))
}

// StepForward pauses every world and advances exactly one frame without the
// host: every stepper steps, then the draw and commit phases run.
func (s *System) StepForward() error {
	for _, w := range s.worlds {
		w.paused = true
	}
	s.stepping = true
	s.frame.Clock = s.clock

	_ = s.registry.EachReverse(func(e Entity) error {
		if st, ok := e.(Stepper); ok {
			st.Step(&s.frame)
		}
		return nil
	})
	if err := s.drawPhase(); err != nil {
		s.discardBuffers()
		return fmt.Errorf("step forward %d: %w", s.clock, err)
	}
	_ = s.commitPhase()

	s.clock++
	return nil
}

// TogglePause flips every world's pause flag.
func (s *System) TogglePause() {
	s.stepping = false
	for _, w := range s.worlds {
		w.paused = !w.paused
	}
}

// Reset destroys every item without pooling it, clears surfaces, pools and
// the name cache, and restarts the id allocator. Worlds survive. Setup runs
// again unless noRestart is set.
func (s *System) Reset(noRestart bool) error {
	for _, w := range s.worlds {
		w.paused = false
		w.MenuHidden = false
		w.surface.Clear()
		w.buffer = w.buffer[:0]
		w.pool.Clear()
	}

	s.cache = NewNameCache()
	s.registry.RemoveWhere(func(e Entity) bool {
		return e.Kind() != KindWorld
	})
	for _, w := range s.worlds {
		s.cache.Touch(w)
	}
	s.items = intmap.New[uint64, Thing](1024)

	s.ids.Reset()
	s.input.Reset()
	s.commands.reset()
	s.resizeTime = time.Time{}
	s.stepping = false

	if noRestart {
		return nil
	}
	return s.runSetup()
}

// DestroySystem resets without restarting, removes every world and returns
// the scheduler to idle. A pending host frame becomes a no-op.
func (s *System) DestroySystem() {
	_ = s.Reset(true)

	s.registry.RemoveWhere(func(Entity) bool { return true })
	s.worlds = nil
	s.cache = NewNameCache()
	s.clock = 0
	s.ids.Reset()
	s.timer.reset()
	s.state = StateIdle
}

// Resize reacts to a viewport change. Items in window-bound worlds are
// rescaled per axis by the new to old world size ratio, bound worlds take the
// viewport size in world units, and stepping pauses until resizing has been
// quiet for the settle interval.
func (s *System) Resize() {
	vw, vh := s.viewport.Size()
	s.resizeTime = s.now()

	_ = s.registry.Each(func(e Entity) error {
		t, ok := e.(Thing)
		if !ok {
			return nil
		}
		it := t.Base()
		w := it.world
		if w == nil || !w.BoundToWindow || it.Location == nil {
			return nil
		}
		nw, nh := w.viewportUnits(vw, vh)
		if w.Width > 0 {
			it.Location.X = nw * it.Location.X / w.Width
		}
		if w.Height > 0 {
			it.Location.Y = nh * it.Location.Y / w.Height
		}
		return nil
	})

	for _, w := range s.worlds {
		if w.BoundToWindow {
			w.fit(vw, vh)
		}
		w.paused = true
	}
	s.log.Debug("resize", zap.Float64("width", vw), zap.Float64("height", vh))
}

// State reports the lifecycle state. A running system whose worlds are all
// paused reports Paused, or Stepping after StepForward.
func (s *System) State() State {
	if s.state != StateRunning {
		return s.state
	}
	if len(s.worlds) == 0 {
		return StateRunning
	}
	for _, w := range s.worlds {
		if !w.paused {
			return StateRunning
		}
	}
	if s.stepping {
		return StateStepping
	}
	return StatePaused
}

func (s *System) Clock() int64 { return s.clock }

func (s *System) Stats() *Stats {
	return &Stats{
		Frames:   s.clock,
		Entities: s.registry.Count(),
		Worlds:   len(s.worlds),
		Phases:   s.timer.snapshot(),
	}
}

func (s *System) Logger() *zap.Logger   { return s.log }
func (s *System) Host() FrameHost       { return s.host }
func (s *System) Features() Features    { return s.features }
func (s *System) Input() *InputState    { return &s.input }
func (s *System) Commands() *Commands   { return &s.commands }
func (s *System) Factories() *Factories { return s.factories }
func (s *System) Recorder() *Recorder   { return s.recorder }
func (s *System) NameCache() *NameCache { return s.cache }
func (s *System) Viewport() Viewport    { return s.viewport }
func (s *System) Worlds() []*World      { return s.worlds }
func (s *System) Registry() *Registry   { return &s.registry }
func (s *System) TotalFrames() int64    { return s.totalFrames }

func (s *System) SetOverlay(o Overlay) {
	s.overlay = o
}

// SetViewport replaces the viewport queried by Resize and RecordPointer.
func (s *System) SetViewport(v Viewport) {
	s.viewport = v
}

// ResizePending reports whether a resize has not settled yet.
func (s *System) ResizePending() bool {
	return !s.resizeTime.IsZero()
}

// Register adds an item kind.
func (s *System) Register(name string, ctor Constructor) {
	s.factories.Register(name, ctor)
}
