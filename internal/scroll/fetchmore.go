package scroll

import "math"

// DefaultFetchThreshold is the tolerance, in rows, around the bottom edge
// inside which the fetch-more callback fires.
const DefaultFetchThreshold = 1.0

// FetchMore is supplied by the data owner. The gate reads the flags and
// calls Callback; it never writes the flags.
type FetchMore struct {
	Callback   func()
	IsFetching bool
	IsReachEnd bool
}

// Gate fires the fetch-more callback when the viewport reaches the bottom
// of the content.
//
// The gate keeps no "already fired" latch. Callers de-duplicate by setting
// IsFetching until their load completes; a caller that never sets it sees a
// call on every qualifying scroll event.
type Gate struct {
	// Threshold is the non-negative tolerance around the bottom edge.
	Threshold float64
}

// NewGate returns a gate with the given tolerance, falling back to
// DefaultFetchThreshold for non-positive values.
func NewGate(threshold float64) Gate {
	if threshold <= 0 {
		threshold = DefaultFetchThreshold
	}
	return Gate{Threshold: threshold}
}

// Reached reports whether m sits within the threshold band of the bottom.
// A slightly negative distance counts, to absorb hosts whose rounding lets
// ScrollTop+ClientHeight exceed ScrollHeight.
func (g Gate) Reached(m Metrics) bool {
	return math.Abs(m.DistanceFromBottom()) <= g.Threshold
}

// Check evaluates one scroll event and invokes the callback when it
// qualifies. It reports whether the callback was called. Panics from the
// callback are not recovered.
func (g Gate) Check(m Metrics, f *FetchMore) bool {
	if f == nil || f.Callback == nil {
		return false
	}
	if f.IsFetching || f.IsReachEnd {
		return false
	}
	if !g.Reached(m) {
		return false
	}

	f.Callback()
	return true
}
