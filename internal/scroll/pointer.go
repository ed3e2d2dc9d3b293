package scroll

// PointerKind classifies a pointer event.
type PointerKind int

// Pointer event kinds.
const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// String returns the event kind name.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// Target is the scrollbar element a pointer event was hit-tested against.
type Target int

// Hit targets.
const (
	TargetNone Target = iota
	TargetTrack
	TargetThumb
)

// PointerEvent is a host pointer event translated into engine terms.
// ClientY is in the same coordinate space as the track top passed to the
// engine.
type PointerEvent struct {
	Kind    PointerKind
	ClientY float64
	Target  Target
}

// PointerListener receives pointer events from a Root. Returning true marks
// the event as consumed, so element-level handling is skipped.
type PointerListener func(ev PointerEvent) bool

// Root is the top-level event target. Every pointer event the host receives
// passes through Dispatch before element hit-testing, which lets a drag
// keep tracking after the pointer leaves the thumb.
type Root struct {
	listeners map[int]PointerListener
	order     []int
	nextID    int
}

// NewRoot creates an empty event root.
func NewRoot() *Root {
	return &Root{listeners: make(map[int]PointerListener)}
}

// Listen registers l and returns a release function. Release is idempotent.
func (r *Root) Listen(l PointerListener) func() {
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.order = append(r.order, id)

	return func() {
		if _, ok := r.listeners[id]; !ok {
			return
		}
		delete(r.listeners, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to registered listeners in registration order and
// reports whether any of them consumed it.
func (r *Root) Dispatch(ev PointerEvent) bool {
	consumed := false
	// Copy: a listener may release itself during delivery.
	ids := append([]int(nil), r.order...)
	for _, id := range ids {
		l, ok := r.listeners[id]
		if !ok {
			continue
		}
		if l(ev) {
			consumed = true
		}
	}
	return consumed
}

// Len returns the number of live listeners.
func (r *Root) Len() int {
	return len(r.listeners)
}
