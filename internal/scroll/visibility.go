package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultIdleHide is how long the scrollbar stays visible after the last
// scroll event.
const DefaultIdleHide = 1000 * time.Millisecond

// Visibility is the transient show/hide state driven by scrolling.
type Visibility int

// Visibility states.
const (
	Hidden Visibility = iota
	Visible
)

// String returns the state name.
func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// IdleMsg is delivered when an idle-hide timer expires.
type IdleMsg struct {
	ID  string
	Seq uint64
}

// VisibilityController owns two independent states: scroll-driven
// visibility with an idle auto-hide timer, and pointer hover.
type VisibilityController struct {
	id       string
	idleHide time.Duration

	state Visibility
	hover bool
	idle  timer
}

// NewVisibilityController creates a controller whose idle messages carry id.
func NewVisibilityController(id string, idleHide time.Duration) *VisibilityController {
	if idleHide <= 0 {
		idleHide = DefaultIdleHide
	}
	return &VisibilityController{id: id, idleHide: idleHide}
}

// Show marks the scrollbar visible and restarts the idle timer.
func (v *VisibilityController) Show() tea.Cmd {
	v.state = Visible
	id := v.id
	return v.idle.arm(v.idleHide, func(seq uint64) tea.Msg {
		return IdleMsg{ID: id, Seq: seq}
	})
}

// CancelIdle drops the pending auto-hide, if any.
func (v *VisibilityController) CancelIdle() {
	v.idle.cancel()
}

// HandleIdle hides the scrollbar when msg belongs to the live timer.
// Stale or foreign messages are ignored.
func (v *VisibilityController) HandleIdle(msg IdleMsg) bool {
	if msg.ID != v.id || !v.idle.fire(msg.Seq) {
		return false
	}
	v.state = Hidden
	return true
}

// PointerEnter sets hover. Visibility is not touched.
func (v *VisibilityController) PointerEnter() {
	v.hover = true
}

// PointerLeave clears hover unless a drag is in progress.
func (v *VisibilityController) PointerLeave(dragging bool) {
	if dragging {
		return
	}
	v.hover = false
}

// State returns the scroll-driven visibility.
func (v *VisibilityController) State() Visibility {
	return v.state
}

// Hovered returns the hover flag.
func (v *VisibilityController) Hovered() bool {
	return v.hover
}

// IdlePending reports whether an auto-hide is scheduled.
func (v *VisibilityController) IdlePending() bool {
	return v.idle.pending()
}

// IsVisible combines the flags the way the renderer reads them.
func (v *VisibilityController) IsVisible(dragging bool) bool {
	return v.state == Visible || v.hover || dragging
}

// Expanded reports whether the thumb renders at its hover thickness.
func (v *VisibilityController) Expanded(dragging bool) bool {
	return v.hover || dragging
}
