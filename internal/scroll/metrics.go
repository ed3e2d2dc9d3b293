package scroll

// Container is a scrollable element. Implementations report live layout
// values on every call; the engine never caches them beyond one frame.
type Container interface {
	// ScrollTop is the current scroll offset from the top of the content.
	ScrollTop() float64
	// ScrollHeight is the full content height.
	ScrollHeight() float64
	// ClientHeight is the visible viewport height.
	ClientHeight() float64
	// SetScrollTop writes the scroll offset. Implementations clamp to the
	// valid range the way a browser does.
	SetScrollTop(top float64)
}

// Metrics is a snapshot of a container's scroll state.
type Metrics struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// Read returns the container's current metrics. A nil container reads as
// zero metrics.
func Read(c Container) Metrics {
	if c == nil {
		return Metrics{}
	}
	return Metrics{
		ScrollTop:    c.ScrollTop(),
		ScrollHeight: c.ScrollHeight(),
		ClientHeight: c.ClientHeight(),
	}
}

// MaxScrollTop returns the largest valid scroll offset.
func (m Metrics) MaxScrollTop() float64 {
	if m.ScrollHeight <= m.ClientHeight {
		return 0
	}
	return m.ScrollHeight - m.ClientHeight
}

// Overflows reports whether the content is taller than the viewport.
func (m Metrics) Overflows() bool {
	return m.ClientHeight > 0 && m.ScrollHeight > m.ClientHeight
}

// DistanceFromBottom is how far the viewport's bottom edge is from the end
// of the content. It can be slightly negative on some hosts when sub-row
// rounding pushes ScrollTop+ClientHeight past ScrollHeight.
func (m Metrics) DistanceFromBottom() float64 {
	return m.ScrollHeight - (m.ScrollTop + m.ClientHeight)
}

// ClampScrollTop limits top to [0, MaxScrollTop].
func (m Metrics) ClampScrollTop(top float64) float64 {
	return clampf(top, 0, m.MaxScrollTop())
}

func clampf(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
