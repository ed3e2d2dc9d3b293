package scroll

import (
	"github.com/rs/zerolog"
)

// Size is an observed container size in cells.
type Size struct {
	Width  int
	Height int
}

// Observer is a resize-observation primitive. Observe subscribes fn and
// returns the function that tears the subscription down.
type Observer interface {
	Observe(fn func(Size)) (stop func())
}

// Notifier is an Observer fed explicitly by its owner, typically from
// tea.WindowSizeMsg and from content changes.
type Notifier struct {
	subs   map[int]func(Size)
	nextID int
	last   Size
}

// NewNotifier creates a Notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Size))}
}

// Observe implements Observer.
func (n *Notifier) Observe(fn func(Size)) func() {
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

// Notify delivers s to every subscriber.
func (n *Notifier) Notify(s Size) {
	n.last = s
	for _, fn := range n.subs {
		fn(s)
	}
}

// Last returns the most recently notified size.
func (n *Notifier) Last() Size {
	return n.last
}

// Subscribers returns the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	return len(n.subs)
}

// ResizeCoordinator recomputes thumb geometry whenever the observed
// container changes size. Without an observer it runs degraded: geometry
// only follows scroll frames.
type ResizeCoordinator struct {
	observer  Observer
	recompute func()
	logger    zerolog.Logger

	stop     func()
	degraded bool
	resizes  int
}

// NewResizeCoordinator binds recompute to observer. observer may be nil.
func NewResizeCoordinator(observer Observer, recompute func(), logger zerolog.Logger) *ResizeCoordinator {
	return &ResizeCoordinator{
		observer:  observer,
		recompute: recompute,
		logger:    logger,
	}
}

// Start subscribes to the observer. It is safe to call more than once.
func (r *ResizeCoordinator) Start() {
	if r.stop != nil || r.degraded {
		return
	}
	if r.observer == nil {
		r.degraded = true
		r.logger.Warn().Msg("resize observation unavailable, thumb geometry follows scroll only")
		return
	}
	r.stop = r.observer.Observe(r.onResize)
}

// Stop releases the subscription. Later notifications are not delivered.
func (r *ResizeCoordinator) Stop() {
	if r.stop == nil {
		return
	}
	r.stop()
	r.stop = nil
}

// Observing reports whether a subscription is live.
func (r *ResizeCoordinator) Observing() bool {
	return r.stop != nil
}

// Degraded reports whether the coordinator started without an observer.
func (r *ResizeCoordinator) Degraded() bool {
	return r.degraded
}

// Resizes counts the notifications handled so far.
func (r *ResizeCoordinator) Resizes() int {
	return r.resizes
}

func (r *ResizeCoordinator) onResize(s Size) {
	r.resizes++
	r.logger.Debug().Int("width", s.Width).Int("height", s.Height).Msg("container resized")
	r.recompute()
}
