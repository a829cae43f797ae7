package shell

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/boot"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/drag"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/overlay"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/providers/theme"
	"go.uber.org/zap"
)

// DefaultSearchLimit caps Spotlight results
const DefaultSearchLimit = 8

// Options configures a Shell
type Options struct {
	SessionID    string
	Layout       window.Layout
	TopBarHeight int
	LogoDelay    time.Duration
	SkipBoot     bool
	Scheduler    boot.Scheduler
	Catalog      *catalog.Catalog
	Content      *content.Registry
	Palette      theme.Palette
	Clock        func() time.Time
	SearchLimit  int
	Logger       *zap.Logger
	Metrics      *monitoring.Metrics
}

// Shell is one desktop session: boot phase, windows, drag and overlays.
//
// Every mutation goes through Dispatch (or the boot timer), which holds the
// shell mutex for the whole event. Components underneath are not
// concurrency-safe on their own.
type Shell struct {
	mu sync.Mutex

	id       string
	boot     *boot.Sequencer
	bus      *input.Bus
	windows  *window.Manager
	drag     *drag.Controller
	overlays *overlay.Coordinator
	catalog  *catalog.Catalog
	content  *content.Registry
	palette  theme.Palette
	limit    int

	selected string
	version  uint64
	closed   bool

	subs   map[int]chan Snapshot
	nextID int

	log     *zap.Logger
	metrics *monitoring.Metrics
}

// New creates a shell and starts its boot sequence
func New(opts Options) *Shell {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Content == nil {
		opts.Content = content.NewRegistry()
	}
	if opts.Layout == (window.Layout{}) {
		opts.Layout = window.DefaultLayout()
	}
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Default()
	}
	if opts.TopBarHeight <= 0 {
		opts.TopBarHeight = drag.DefaultTopBarHeight
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	bus := input.NewBus()
	windows := window.NewManager(opts.Layout, catalogApps{opts.Catalog})
	if opts.Clock != nil {
		windows.WithClock(opts.Clock)
	}

	s := &Shell{
		id:       opts.SessionID,
		boot:     boot.NewSequencer(opts.LogoDelay, opts.Scheduler),
		bus:      bus,
		windows:  windows,
		drag:     drag.NewController(bus, windows, opts.TopBarHeight),
		overlays: overlay.NewCoordinator(bus),
		catalog:  opts.Catalog,
		content:  opts.Content,
		palette:  opts.Palette.WithFallback(),
		limit:    opts.SearchLimit,
		subs:     make(map[int]chan Snapshot),
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	s.overlays.OnChange(s.onOverlayChange)

	if opts.SkipBoot {
		s.boot.Skip()
	} else {
		s.boot.Start(s.onLogoElapsed)
	}
	return s
}

// ID returns the session id
func (s *Shell) ID() string {
	return s.id
}

// Dispatch applies one event and notifies subscribers if state changed
func (s *Shell) Dispatch(ev Event) (Result, error) {
	if err := ev.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{}, ErrClosed
	}

	res := s.apply(ev)
	if res.Handled {
		s.publishLocked()
	}
	return res, nil
}

// Snapshot returns the current state
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Subscribe returns a channel that receives a snapshot after every state
// change, starting with the current one. Slow readers only see the latest.
func (s *Shell) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close stops the boot timer, ends drags and overlays and closes
// subscriber channels. It returns the number of windows that were open.
func (s *Shell) Close() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true

	s.boot.Stop()
	s.drag.End()
	s.overlays.Close()

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}

	open := s.windows.Len()
	if s.metrics != nil && open > 0 {
		s.metrics.AddWindowsOpen(-open)
	}
	s.log.Debug("Shell closed", zap.Int("windows", open))
	return open
}

func (s *Shell) onLogoElapsed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.boot.LogoElapsed() {
		return
	}
	s.log.Debug("Boot phase changed", zap.Stringer("phase", s.boot.Phase()))
	s.publishLocked()
}

func (s *Shell) onOverlayChange(from, to overlay.State) {
	s.log.Debug("Overlay changed",
		zap.Stringer("from", from.Kind),
		zap.Stringer("to", to.Kind))
	if to.Open() && s.metrics != nil {
		s.metrics.RecordOverlayOpen(to.Kind.String())
	}
}

// publishLocked bumps the version and fans the snapshot out without blocking
func (s *Shell) publishLocked() {
	s.version++
	if len(s.subs) == 0 {
		return
	}

	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Shell) recordWindowOp(op string, openDelta int) {
	if s.metrics != nil {
		s.metrics.RecordWindowOp(op, openDelta)
	}
}

// catalogApps adapts the catalog to the window registry's resolver
type catalogApps struct {
	c *catalog.Catalog
}

func (a catalogApps) ResolveApp(appID string) window.App {
	app := a.c.Resolve(appID)
	return window.App{
		Title:   app.Title,
		Icon:    app.Icon,
		Content: app.Content,
		Size:    app.Size,
	}
}
