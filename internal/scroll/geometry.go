package scroll

// Geometry is the derived size and position of the synthetic thumb.
type Geometry struct {
	HeightPx float64
	OffsetPx float64
}

// Mirror maps scroll metrics onto thumb geometry using the ratio
// ClientHeight/ScrollHeight. The mapping is linear, so offset 0 is scroll
// top 0 and the maximum offset (ClientHeight-HeightPx) is the maximum scroll
// top exactly.
//
// When there is nothing to measure (zero heights) the zero geometry is
// returned. When the content does not overflow the thumb fills the track;
// callers should skip rendering it.
func Mirror(m Metrics) Geometry {
	if m.ClientHeight <= 0 || m.ScrollHeight <= 0 {
		return Geometry{}
	}
	if m.ScrollHeight <= m.ClientHeight {
		return Geometry{HeightPx: m.ClientHeight}
	}

	ratio := m.ClientHeight / m.ScrollHeight
	return Geometry{
		HeightPx: m.ClientHeight * ratio,
		OffsetPx: m.ScrollTop * ratio,
	}
}

// OffsetToScrollTop is the inverse of Mirror's offset mapping.
func OffsetToScrollTop(offset float64, m Metrics) float64 {
	if m.ClientHeight <= 0 {
		return 0
	}
	return offset * (m.ScrollHeight / m.ClientHeight)
}

// MaxOffset is the furthest the thumb can travel down the track.
func (g Geometry) MaxOffset(m Metrics) float64 {
	if m.ClientHeight <= g.HeightPx {
		return 0
	}
	return m.ClientHeight - g.HeightPx
}

// Contains reports whether y, relative to the track top, falls on the thumb.
func (g Geometry) Contains(y float64) bool {
	return g.HeightPx > 0 && y >= g.OffsetPx && y < g.OffsetPx+g.HeightPx
}
