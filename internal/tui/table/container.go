package table

import (
	"math"

	"github.com/charmbracelet/bubbles/viewport"
)

// ViewportContainer exposes a viewport as a scroll.Container. Offsets are
// whole rows; fractional writes round to the nearest row.
type ViewportContainer struct {
	vp *viewport.Model
}

// NewViewportContainer wraps vp. The viewport must outlive the container.
func NewViewportContainer(vp *viewport.Model) *ViewportContainer {
	return &ViewportContainer{vp: vp}
}

// ScrollTop implements scroll.Container.
func (c *ViewportContainer) ScrollTop() float64 {
	return float64(c.vp.YOffset)
}

// ScrollHeight implements scroll.Container.
func (c *ViewportContainer) ScrollHeight() float64 {
	return float64(c.vp.TotalLineCount())
}

// ClientHeight implements scroll.Container.
func (c *ViewportContainer) ClientHeight() float64 {
	return float64(c.vp.Height)
}

// SetScrollTop implements scroll.Container. The viewport clamps the offset.
func (c *ViewportContainer) SetScrollTop(top float64) {
	c.vp.SetYOffset(int(math.Round(top)))
}
