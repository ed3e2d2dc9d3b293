package scroll

// TrackClick returns the scroll position for a click on the track at
// clickY. The thumb is centered under the pointer, clamped to the track,
// and the offset is converted back through the inverse mapping.
//
// Clicks on the thumb itself belong to the drag controller and must not be
// routed here.
func TrackClick(clickY, trackTop float64, g Geometry, m Metrics) float64 {
	if !m.Overflows() {
		return 0
	}

	offset := clickY - trackTop - g.HeightPx/2
	offset = clampf(offset, 0, g.MaxOffset(m))

	return m.ClampScrollTop(OffsetToScrollTop(offset, m))
}
