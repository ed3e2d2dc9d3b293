package scroll

import (
	"github.com/rs/zerolog"
)

// DragSession exists only while the pointer button is held on the thumb.
type DragSession struct {
	// StartClientY is the pointer position when the drag began.
	StartClientY float64
	// StartScrollTop is the container scroll position when the drag began.
	StartScrollTop float64
	// TrackTopPx is the track's top edge, read once at drag start.
	TrackTopPx float64

	release func()
}

// DragController turns pointer down/move/up on the thumb into scroll writes.
// It has two states: idle (no session) and dragging.
type DragController struct {
	root      *Root
	container Container
	write     func(top float64)
	logger    zerolog.Logger

	session *DragSession
}

// NewDragController creates a controller that registers its move/up
// listeners on root and sends scroll positions to write.
func NewDragController(root *Root, c Container, write func(top float64), logger zerolog.Logger) *DragController {
	return &DragController{
		root:      root,
		container: c,
		write:     write,
		logger:    logger,
	}
}

// Dragging reports whether a drag session is active.
func (d *DragController) Dragging() bool {
	return d.session != nil
}

// Session returns the active session, or nil when idle.
func (d *DragController) Session() *DragSession {
	return d.session
}

// Begin starts a drag session from a pointer-down on the thumb. A second
// Begin while dragging is ignored.
func (d *DragController) Begin(ev PointerEvent, trackTop float64) {
	if d.session != nil {
		return
	}

	s := &DragSession{
		StartClientY:   ev.ClientY,
		StartScrollTop: Read(d.container).ScrollTop,
		TrackTopPx:     trackTop,
	}
	s.release = d.root.Listen(d.handle)
	d.session = s

	d.logger.Debug().
		Float64("start_y", s.StartClientY).
		Float64("start_scroll_top", s.StartScrollTop).
		Msg("drag started")
}

// Move applies a pointer-move. The thumb is never positioned here; the
// scroll write re-enters the scroll path and geometry re-derives from it.
func (d *DragController) Move(ev PointerEvent) {
	if d.session == nil {
		return
	}

	m := Read(d.container)
	if m.ClientHeight <= 0 {
		return
	}

	delta := (ev.ClientY - d.session.StartClientY) * (m.ScrollHeight / m.ClientHeight)
	d.write(m.ClampScrollTop(d.session.StartScrollTop + delta))
}

// End finishes the drag and releases the root listener. Calling End with no
// session is a no-op.
func (d *DragController) End() {
	if d.session == nil {
		return
	}

	s := d.session
	d.session = nil
	if s.release != nil {
		s.release()
	}

	d.logger.Debug().Msg("drag ended")
}

// handle is the root-level listener installed for the lifetime of a session.
func (d *DragController) handle(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerMove:
		d.Move(ev)
		return true
	case PointerUp:
		d.End()
		return true
	case PointerDown:
		return false
	}
	return false
}
