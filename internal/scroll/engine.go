package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/tablekit/internal/logging"
)

// DefaultFrameInterval batches geometry recomputes to roughly one per
// rendered frame.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameMsg asks an engine to recompute thumb geometry from fresh metrics.
type FrameMsg struct {
	ID  string
	Seq uint64
}

// Options configures an Engine. The zero value is usable.
type Options struct {
	// IdleHide is the auto-hide delay after the last scroll event.
	IdleHide time.Duration
	// FrameInterval is the delay before a batched geometry recompute.
	FrameInterval time.Duration
	// FetchThreshold is the fetch-more tolerance around the bottom edge.
	FetchThreshold float64
	// Observer delivers container resizes. Nil runs the resize path
	// degraded.
	Observer Observer
	// TrackTop returns the track's top edge in pointer coordinates. It is
	// read once per drag and once per track click.
	TrackTop func() float64
	// Logger receives engine diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// ThumbStyle is what the presentational layer needs to draw the thumb.
type ThumbStyle struct {
	HeightPx float64
	OffsetPx float64
	// Rendered is false when the content does not overflow.
	Rendered bool
	// Expanded is true while hovered or dragging.
	Expanded bool
}

// Engine owns the scroll coordination state for one table. All methods
// must be called from the Bubble Tea event loop.
type Engine struct {
	id        string
	container Container
	logger    zerolog.Logger
	trackTop  func() float64
	interval  time.Duration

	root   *Root
	drag   *DragController
	vis    *VisibilityController
	gate   Gate
	resize *ResizeCoordinator
	fetch  *FetchMore

	geometry Geometry
	overflow bool
	frame    timer

	// cmds collects commands produced by scroll writes during one
	// pointer dispatch.
	cmds       []tea.Cmd
	lastTarget Target
	closed     bool
}

// New binds an engine to container, starts resize observation and derives
// the initial geometry.
func New(container Container, opts Options) *Engine {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	id := ulid.Make().String()
	logger = logging.ComponentLogger(logger, "scroll").With().Str(logging.FieldEngineID, id).Logger()

	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	trackTop := opts.TrackTop
	if trackTop == nil {
		trackTop = func() float64 { return 0 }
	}

	e := &Engine{
		id:        id,
		container: container,
		logger:    logger,
		trackTop:  trackTop,
		interval:  interval,
		root:      NewRoot(),
		vis:       NewVisibilityController(id, opts.IdleHide),
		gate:      NewGate(opts.FetchThreshold),
	}
	e.drag = NewDragController(e.root, container, e.write, logger)
	e.resize = NewResizeCoordinator(opts.Observer, e.Recompute, logger)

	e.resize.Start()
	e.Recompute()
	return e
}

// ID returns the engine instance id carried by its messages.
func (e *Engine) ID() string {
	return e.id
}

// Root returns the engine's top-level pointer event target.
func (e *Engine) Root() *Root {
	return e.root
}

// SetFetchMore replaces the fetch-more configuration. Nil disables the gate.
func (e *Engine) SetFetchMore(f *FetchMore) {
	e.fetch = f
}

// Recompute derives geometry and overflow from a fresh metrics read. It is
// the only writer of the thumb geometry.
func (e *Engine) Recompute() {
	m := Read(e.container)
	e.overflow = m.Overflows()
	e.geometry = Mirror(m)
}

// ScrollTo writes the container's scroll position and, if it moved, runs
// the scroll-event path.
func (e *Engine) ScrollTo(top float64) tea.Cmd {
	if e.closed || e.container == nil {
		return nil
	}

	before := e.container.ScrollTop()
	e.container.SetScrollTop(Read(e.container).ClampScrollTop(top))
	if e.container.ScrollTop() == before {
		return nil
	}
	return e.HandleScroll()
}

// ScrollBy scrolls relative to the current position.
func (e *Engine) ScrollBy(delta float64) tea.Cmd {
	if e.container == nil {
		return nil
	}
	return e.ScrollTo(e.container.ScrollTop() + delta)
}

// HandleScroll processes one scroll event: show the scrollbar, restart the
// idle timer, schedule a frame recompute and evaluate fetch-more.
func (e *Engine) HandleScroll() tea.Cmd {
	if e.closed {
		return nil
	}

	cmds := []tea.Cmd{e.vis.Show()}
	if !e.frame.pending() {
		id := e.id
		cmds = append(cmds, e.frame.arm(e.interval, func(seq uint64) tea.Msg {
			return FrameMsg{ID: id, Seq: seq}
		}))
	}

	if e.gate.Check(Read(e.container), e.fetch) {
		e.logger.Debug().Msg("fetch-more triggered")
	}

	return tea.Batch(cmds...)
}

// Update consumes the engine's own deferred messages. Foreign messages are
// ignored.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	if e.closed {
		return nil
	}

	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ID == e.id && e.frame.fire(msg.Seq) {
			e.Recompute()
		}
	case IdleMsg:
		e.vis.HandleIdle(msg)
	}
	return nil
}

// HandlePointer routes a pointer event. Root listeners (an active drag) see
// it first; otherwise it is handled at the element level.
func (e *Engine) HandlePointer(ev PointerEvent) tea.Cmd {
	if e.closed {
		return nil
	}
	e.cmds = nil

	e.trackHover(ev)
	if !e.root.Dispatch(ev) {
		e.handleElement(ev)
	}
	if ev.Kind == PointerUp && ev.Target == TargetNone {
		e.vis.PointerLeave(e.drag.Dragging())
	}

	if len(e.cmds) == 0 {
		return nil
	}
	return tea.Batch(e.cmds...)
}

func (e *Engine) handleElement(ev PointerEvent) {
	if ev.Kind != PointerDown || !e.overflow {
		return
	}

	switch ev.Target {
	case TargetThumb:
		// The idle timer must not fire while the thumb is held.
		e.vis.CancelIdle()
		e.drag.Begin(ev, e.trackTop())
	case TargetTrack:
		top := TrackClick(ev.ClientY, e.trackTop(), e.geometry, Read(e.container))
		e.write(top)
	case TargetNone:
	}
}

// trackHover derives enter/leave transitions from successive hit targets.
func (e *Engine) trackHover(ev PointerEvent) {
	over := ev.Target != TargetNone
	was := e.lastTarget != TargetNone
	e.lastTarget = ev.Target

	switch {
	case over && !was:
		e.vis.PointerEnter()
	case !over && was:
		e.vis.PointerLeave(e.drag.Dragging())
	}
}

// write is the drag and track-click scroll writer.
func (e *Engine) write(top float64) {
	if cmd := e.ScrollTo(top); cmd != nil {
		e.cmds = append(e.cmds, cmd)
	}
}

// Close tears the engine down: resize observation, any live drag capture
// and pending timers. Closed engines ignore all input.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.resize.Stop()
	e.drag.End()
	e.vis.CancelIdle()
	e.frame.cancel()
	e.closed = true
}

// Geometry returns the last derived thumb geometry.
func (e *Engine) Geometry() Geometry {
	return e.geometry
}

// Metrics reads the container's live metrics.
func (e *Engine) Metrics() Metrics {
	return Read(e.container)
}

// ThumbStyle returns the values the renderer applies to the thumb.
func (e *Engine) ThumbStyle() ThumbStyle {
	dragging := e.drag.Dragging()
	return ThumbStyle{
		HeightPx: e.geometry.HeightPx,
		OffsetPx: e.geometry.OffsetPx,
		Rendered: e.overflow,
		Expanded: e.vis.Expanded(dragging),
	}
}

// Overflows reports whether the last recompute found overflowing content.
func (e *Engine) Overflows() bool {
	return e.overflow
}

// IsVisible reports whether the scrollbar should be drawn visible.
func (e *Engine) IsVisible() bool {
	return e.vis.IsVisible(e.drag.Dragging())
}

// IsDragging reports whether a drag session is active.
func (e *Engine) IsDragging() bool {
	return e.drag.Dragging()
}

// IsHovered reports the hover flag.
func (e *Engine) IsHovered() bool {
	return e.vis.Hovered()
}

// Visibility exposes the visibility controller for inspection.
func (e *Engine) Visibility() *VisibilityController {
	return e.vis
}

// Resize exposes the resize coordinator for inspection.
func (e *Engine) Resize() *ResizeCoordinator {
	return e.resize
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e.closed
}
