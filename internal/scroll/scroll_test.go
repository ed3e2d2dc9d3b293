package scroll

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContainer clamps writes the way a browser scroll container does.
type fakeContainer struct {
	top    float64
	scroll float64
	client float64
}

func (c *fakeContainer) ScrollTop() float64    { return c.top }
func (c *fakeContainer) ScrollHeight() float64 { return c.scroll }
func (c *fakeContainer) ClientHeight() float64 { return c.client }

func (c *fakeContainer) SetScrollTop(top float64) {
	c.top = Metrics{ScrollHeight: c.scroll, ClientHeight: c.client}.ClampScrollTop(top)
}

func TestRead(t *testing.T) {
	c := &fakeContainer{top: 12, scroll: 500, client: 100}
	assert.Equal(t, Metrics{ScrollTop: 12, ScrollHeight: 500, ClientHeight: 100}, Read(c))
	assert.Equal(t, Metrics{}, Read(nil))
}

func TestMetrics_ZeroHeight(t *testing.T) {
	m := Read(&fakeContainer{})
	assert.False(t, m.Overflows())
	assert.Zero(t, m.MaxScrollTop())
	assert.Equal(t, Geometry{}, Mirror(m))
	assert.Zero(t, OffsetToScrollTop(10, m))
}

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want Geometry
	}{
		{
			name: "top of content",
			m:    Metrics{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 200},
			want: Geometry{HeightPx: 40, OffsetPx: 0},
		},
		{
			name: "bottom of content",
			m:    Metrics{ScrollTop: 800, ScrollHeight: 1000, ClientHeight: 200},
			want: Geometry{HeightPx: 40, OffsetPx: 160},
		},
		{
			name: "content equals viewport",
			m:    Metrics{ScrollTop: 0, ScrollHeight: 200, ClientHeight: 200},
			want: Geometry{HeightPx: 200, OffsetPx: 0},
		},
		{
			name: "content shorter than viewport",
			m:    Metrics{ScrollTop: 0, ScrollHeight: 50, ClientHeight: 200},
			want: Geometry{HeightPx: 200, OffsetPx: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mirror(tt.m)
			assert.InDelta(t, tt.want.HeightPx, got.HeightPx, 1e-9)
			assert.InDelta(t, tt.want.OffsetPx, got.OffsetPx, 1e-9)
		})
	}
}

func TestMirror_MaxOffsetIsMaxScroll(t *testing.T) {
	m := Metrics{ScrollTop: 3000 - 170, ScrollHeight: 3000, ClientHeight: 170}
	g := Mirror(m)
	assert.InDelta(t, g.MaxOffset(m), g.OffsetPx, 1e-9)
}

func TestMirror_RoundTrip(t *testing.T) {
	sizes := []struct{ scroll, client float64 }{
		{1000, 200},
		{237, 19},
		{10000, 33},
	}

	for _, s := range sizes {
		maxTop := s.scroll - s.client
		for top := 0.0; top <= maxTop; top += maxTop / 97 {
			m := Metrics{ScrollTop: top, ScrollHeight: s.scroll, ClientHeight: s.client}
			back := OffsetToScrollTop(Mirror(m).OffsetPx, m)
			require.InDelta(t, top, back, 1e-6, "scroll=%v client=%v top=%v", s.scroll, s.client, top)
		}
	}
}

func TestGeometry_Contains(t *testing.T) {
	g := Geometry{HeightPx: 4, OffsetPx: 2}
	assert.False(t, g.Contains(1.9))
	assert.True(t, g.Contains(2))
	assert.True(t, g.Contains(5.9))
	assert.False(t, g.Contains(6))
	assert.False(t, Geometry{}.Contains(0))
}

func TestTrackClick_CentersThumb(t *testing.T) {
	m := Metrics{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 200}
	g := Mirror(m)
	require.InDelta(t, 40, g.HeightPx, 1e-9)

	const trackTop = 10
	top := TrackClick(trackTop+100, trackTop, g, m)

	// Thumb offset 100-20=80 maps to 80*1000/200.
	assert.InDelta(t, 400, top, 1e-9)
	assert.InDelta(t, 80, Mirror(Metrics{ScrollTop: top, ScrollHeight: 1000, ClientHeight: 200}).OffsetPx, 1e-9)
}

func TestTrackClick_Clamps(t *testing.T) {
	m := Metrics{ScrollTop: 300, ScrollHeight: 1000, ClientHeight: 200}
	g := Mirror(m)

	assert.Zero(t, TrackClick(0, 0, g, m))
	assert.InDelta(t, 800, TrackClick(199, 0, g, m), 1e-9)
	assert.InDelta(t, 800, TrackClick(5000, 0, g, m), 1e-9)
	assert.Zero(t, TrackClick(-50, 0, g, m))
}

func TestTrackClick_NoOverflow(t *testing.T) {
	m := Metrics{ScrollHeight: 100, ClientHeight: 200}
	assert.Zero(t, TrackClick(50, 0, Mirror(m), m))
}

func TestGate_Check(t *testing.T) {
	tests := []struct {
		name       string
		m          Metrics
		isFetching bool
		isReachEnd bool
		want       bool
	}{
		{
			name: "exactly at bottom",
			m:    Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30},
			want: true,
		},
		{
			name:       "at bottom while fetching",
			m:          Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30},
			isFetching: true,
		},
		{
			name:       "at bottom after reaching end",
			m:          Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30},
			isReachEnd: true,
		},
		{
			name: "negative distance within tolerance",
			m:    Metrics{ScrollHeight: 199, ClientHeight: 200, ScrollTop: 0},
			want: true,
		},
		{
			name: "sub-row short of bottom",
			m:    Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 29.4},
			want: true,
		},
		{
			name: "far from bottom",
			m:    Metrics{ScrollHeight: 1000, ClientHeight: 200, ScrollTop: 100},
		},
		{
			name: "negative distance beyond tolerance",
			m:    Metrics{ScrollHeight: 150, ClientHeight: 200, ScrollTop: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			f := &FetchMore{
				Callback:   func() { calls++ },
				IsFetching: tt.isFetching,
				IsReachEnd: tt.isReachEnd,
			}

			got := NewGate(DefaultFetchThreshold).Check(tt.m, f)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, 1, calls)
			} else {
				assert.Zero(t, calls)
			}
		})
	}
}

func TestGate_NoLatch(t *testing.T) {
	calls := 0
	f := &FetchMore{Callback: func() { calls++ }}
	m := Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30}
	g := NewGate(0)

	for range 3 {
		g.Check(m, f)
	}
	assert.Equal(t, 3, calls, "gate relies on the caller's flags only")

	f.IsFetching = true
	g.Check(m, f)
	assert.Equal(t, 3, calls)
}

func TestGate_NilFetchMore(t *testing.T) {
	m := Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30}
	assert.False(t, NewGate(1).Check(m, nil))
	assert.False(t, NewGate(1).Check(m, &FetchMore{}))
}

func TestGate_CallbackPanicPropagates(t *testing.T) {
	m := Metrics{ScrollHeight: 230, ClientHeight: 200, ScrollTop: 30}
	f := &FetchMore{Callback: func() { panic("boom") }}
	assert.Panics(t, func() { NewGate(1).Check(m, f) })
}

func TestVisibility_ShowAndIdleHide(t *testing.T) {
	v := NewVisibilityController("table-a", time.Second)
	assert.Equal(t, Hidden, v.State())

	cmd := v.Show()
	require.NotNil(t, cmd)
	assert.Equal(t, Visible, v.State())
	assert.True(t, v.IsVisible(false))

	assert.True(t, v.HandleIdle(IdleMsg{ID: "table-a", Seq: v.idle.seq}))
	assert.Equal(t, Hidden, v.State())
	assert.False(t, v.IsVisible(false))
}

func TestVisibility_ScrollBeforeExpiryResetsTimer(t *testing.T) {
	v := NewVisibilityController("table-a", time.Second)

	v.Show()
	first := v.idle.seq
	v.Show()
	second := v.idle.seq

	// The original expiry arrives but a newer scroll re-armed the timer.
	assert.False(t, v.HandleIdle(IdleMsg{ID: "table-a", Seq: first}))
	assert.Equal(t, Visible, v.State())

	assert.True(t, v.HandleIdle(IdleMsg{ID: "table-a", Seq: second}))
	assert.Equal(t, Hidden, v.State())
}

func TestVisibility_TickDeliversIdleMsg(t *testing.T) {
	v := NewVisibilityController("table-a", 5*time.Millisecond)
	cmd := v.Show()

	msg, ok := cmd().(IdleMsg)
	require.True(t, ok)
	assert.Equal(t, "table-a", msg.ID)
	assert.True(t, v.HandleIdle(msg))
}

func TestVisibility_IgnoresForeignAndCancelled(t *testing.T) {
	v := NewVisibilityController("table-a", time.Second)
	v.Show()
	seq := v.idle.seq

	assert.False(t, v.HandleIdle(IdleMsg{ID: "table-b", Seq: seq}))

	v.CancelIdle()
	assert.False(t, v.IdlePending())
	assert.False(t, v.HandleIdle(IdleMsg{ID: "table-a", Seq: seq}))
	assert.Equal(t, Visible, v.State())
}

func TestVisibility_Hover(t *testing.T) {
	v := NewVisibilityController("table-a", time.Second)

	v.PointerEnter()
	assert.True(t, v.Hovered())
	assert.True(t, v.IsVisible(false), "hovered scrollbar is visible while hidden")
	assert.Equal(t, Hidden, v.State())

	v.PointerLeave(true)
	assert.True(t, v.Hovered(), "drag keeps hover")

	v.PointerLeave(false)
	assert.False(t, v.Hovered())
	assert.True(t, v.Expanded(true))
	assert.False(t, v.Expanded(false))
}

func TestRoot_ListenRelease(t *testing.T) {
	r := NewRoot()
	var got []PointerKind
	release := r.Listen(func(ev PointerEvent) bool {
		got = append(got, ev.Kind)
		return true
	})

	assert.True(t, r.Dispatch(PointerEvent{Kind: PointerMove}))
	release()
	release()
	assert.False(t, r.Dispatch(PointerEvent{Kind: PointerMove}))
	assert.Equal(t, []PointerKind{PointerMove}, got)
	assert.Zero(t, r.Len())
}

func TestDragController_StateMachine(t *testing.T) {
	c := &fakeContainer{top: 100, scroll: 1000, client: 200}
	root := NewRoot()
	d := NewDragController(root, c, c.SetScrollTop, nopLogger())

	d.End()
	assert.False(t, d.Dragging(), "end without session is a no-op")

	d.Begin(PointerEvent{Kind: PointerDown, ClientY: 30, Target: TargetThumb}, 7)
	require.True(t, d.Dragging())
	assert.Equal(t, 1, root.Len())
	s := d.Session()
	assert.InDelta(t, 30, s.StartClientY, 1e-9)
	assert.InDelta(t, 100, s.StartScrollTop, 1e-9)
	assert.InDelta(t, 7, s.TrackTopPx, 1e-9)

	// Moves arrive through the root even off the thumb.
	root.Dispatch(PointerEvent{Kind: PointerMove, ClientY: 40})
	assert.InDelta(t, 150, c.top, 1e-9)

	root.Dispatch(PointerEvent{Kind: PointerUp, ClientY: 40})
	assert.False(t, d.Dragging())
	assert.Zero(t, root.Len())

	root.Dispatch(PointerEvent{Kind: PointerUp})
	assert.False(t, d.Dragging())
}

func TestDragController_AlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 200 {
		c := &fakeContainer{scroll: 200 + rng.Float64()*5000, client: 1 + rng.Float64()*199}
		c.SetScrollTop(rng.Float64() * c.scroll)
		d := NewDragController(NewRoot(), c, c.SetScrollTop, nopLogger())
		maxTop := c.scroll - c.client

		var lastWrite float64
		write := func(top float64) {
			lastWrite = top
			c.SetScrollTop(top)
		}
		d.write = write

		d.Begin(PointerEvent{Kind: PointerDown, ClientY: rng.Float64() * c.client}, 0)
		for range 20 {
			d.Move(PointerEvent{Kind: PointerMove, ClientY: (rng.Float64() - 0.5) * 4 * c.client})
			require.GreaterOrEqual(t, lastWrite, 0.0)
			require.LessOrEqual(t, lastWrite, maxTop+1e-9)
		}
		d.End()
	}
}

func TestDragController_ZeroHeightIsSafe(t *testing.T) {
	c := &fakeContainer{}
	writes := 0
	d := NewDragController(NewRoot(), c, func(float64) { writes++ }, nopLogger())

	d.Begin(PointerEvent{Kind: PointerDown}, 0)
	d.Move(PointerEvent{Kind: PointerMove, ClientY: 100})
	assert.Zero(t, writes)
	assert.False(t, math.IsNaN(c.top))
}
