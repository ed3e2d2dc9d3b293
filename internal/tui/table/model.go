package table

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/rshade/tablekit/internal/logging"
	"github.com/rshade/tablekit/internal/pagination"
	"github.com/rshade/tablekit/internal/scroll"
)

// Layout constants.
const (
	headerHeight   = 1
	footerHeight   = 1
	scrollbarWidth = 1
	cellGap        = 1
	defaultWidth   = 80
	defaultHeight  = 24
	wheelDelta     = 3
	ellipsis       = "…"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Row is one rendered row: one string per column.
type Row []string

// FetchMore is the infinite-scroll hook. Callback returns the command that
// loads more rows; the owner flips IsFetching and IsReachEnd through
// SetFetchMore as loads start and finish.
type FetchMore struct {
	Callback   func() tea.Cmd
	IsFetching bool
	IsReachEnd bool
}

// Options configures a table Model.
type Options struct {
	Columns    []Column
	Rows       []Row
	Pagination *pagination.Options
	FetchMore  *FetchMore
	Scroll     scroll.Options
	Styles     *Styles
	KeyMap     *KeyMap
	Logger     *zerolog.Logger
}

// Model is a table body with a synthetic scrollbar.
type Model struct {
	columns    []Column
	rows       []Row
	visible    []Row
	pagination *pagination.Options
	fetchMore  *FetchMore
	status     string
	errText    string

	viewport  *viewport.Model
	container *ViewportContainer
	notifier  *scroll.Notifier
	engine    *scroll.Engine

	keys   KeyMap
	styles Styles
	logger zerolog.Logger

	width   int
	height  int
	originX int
	originY int

	// fetchCmd is set by the fetch-more callback during a scroll event and
	// drained by the caller of the event.
	fetchCmd tea.Cmd
}

// New creates a table model at the default size.
func New(opts Options) *Model {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	vp := viewport.New(defaultWidth-scrollbarWidth, bodyHeight(defaultHeight))

	m := &Model{
		columns:    opts.Columns,
		pagination: opts.Pagination,
		viewport:   &vp,
		notifier:   scroll.NewNotifier(),
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		logger:     logging.ComponentLogger(logger, "table"),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	if opts.KeyMap != nil {
		m.keys = *opts.KeyMap
	}
	m.container = NewViewportContainer(m.viewport)

	engineOpts := opts.Scroll
	engineOpts.Observer = m.notifier
	engineOpts.TrackTop = m.trackTop
	engineOpts.Logger = &m.logger
	m.engine = scroll.New(m.container, engineOpts)

	m.SetRows(opts.Rows)
	m.SetFetchMore(opts.FetchMore)
	return m
}

func bodyHeight(total int) int {
	return max(0, total-headerHeight-footerHeight)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case scroll.FrameMsg, scroll.IdleMsg:
		return m, m.engine.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := float64(m.viewport.Height)

	switch {
	case key.Matches(msg, m.keys.LineUp):
		return m.scrollBy(-1)
	case key.Matches(msg, m.keys.LineDown):
		return m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-page)
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(page)
	case key.Matches(msg, m.keys.Top):
		return m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m.scrollTo(m.engine.Metrics().MaxScrollTop())
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			return m.scrollBy(-wheelDelta)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			return m.scrollBy(wheelDelta)
		}
		return nil
	}

	ev := scroll.PointerEvent{
		// Cell centre, so a click on row r centres the thumb on r.
		ClientY: float64(msg.Y) + 0.5,
		Target:  m.hitTest(msg.X, msg.Y),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		ev.Kind = scroll.PointerDown
	case tea.MouseActionMotion:
		ev.Kind = scroll.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = scroll.PointerUp
	default:
		return nil
	}

	return m.drain(m.engine.HandlePointer(ev))
}

// hitTest maps a screen cell onto the scrollbar elements.
func (m *Model) hitTest(x, y int) scroll.Target {
	if x != m.originX+m.width-scrollbarWidth {
		return scroll.TargetNone
	}
	row := y - int(m.trackTop())
	if row < 0 || row >= m.viewport.Height {
		return scroll.TargetNone
	}
	if start, n := m.thumbRows(); n > 0 && row >= start && row < start+n {
		return scroll.TargetThumb
	}
	return scroll.TargetTrack
}

// thumbRows projects the thumb geometry onto whole rows.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (m *Model) thumbRows() (start, n int) {
	style := m.engine.ThumbStyle()
	h := m.viewport.Height
	if !style.Rendered || h <= 0 {
		return 0, 0
	}
	n = min(h, max(1, int(math.Round(style.HeightPx))))
	start = min(h-n, max(0, int(math.Floor(style.OffsetPx))))
	return start, n
}

func (m *Model) trackTop() float64 {
	return float64(m.originY + headerHeight)
}

func (m *Model) scrollBy(delta float64) tea.Cmd {
	return m.drain(m.engine.ScrollBy(delta))
}

func (m *Model) scrollTo(top float64) tea.Cmd {
	return m.drain(m.engine.ScrollTo(top))
}

// drain merges a pending fetch-more command into cmd.
func (m *Model) drain(cmd tea.Cmd) tea.Cmd {
	if m.fetchCmd == nil {
		return cmd
	}
	fetch := m.fetchCmd
	m.fetchCmd = nil
	return tea.Batch(cmd, fetch)
}

// SetSize resizes the table and notifies the scroll engine.
func (m *Model) SetSize(width, height int) {
	m.width = max(scrollbarWidth, width)
	m.height = max(0, height)
	m.viewport.Width = m.width - scrollbarWidth
	m.viewport.Height = bodyHeight(m.height)
	m.renderBody()
}

// SetOrigin records the table's top-left screen cell for mouse hit-testing.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// SetRows replaces the full row set.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.renderBody()
}

// AppendRows adds rows to the end of the row set, keeping the scroll offset.
func (m *Model) AppendRows(rows ...Row) {
	m.rows = append(m.rows, rows...)
	m.renderBody()
}

// SetPagination replaces the pagination options and re-slices the rows.
// The scroll position resets to the top of the new page.
func (m *Model) SetPagination(p *pagination.Options) {
	m.pagination = p
	m.renderBody()
	m.viewport.SetYOffset(0)
	m.engine.Recompute()
}

// SetFetchMore replaces the infinite-scroll hook. Nil disables it.
func (m *Model) SetFetchMore(f *FetchMore) {
	m.fetchMore = f
	if f == nil || f.Callback == nil {
		m.engine.SetFetchMore(nil)
		return
	}

	callback := f.Callback
	m.engine.SetFetchMore(&scroll.FetchMore{
		Callback: func() {
			m.logger.Debug().Int("rows", len(m.rows)).Msg("fetching more rows")
			m.fetchCmd = callback()
		},
		IsFetching: f.IsFetching,
		IsReachEnd: f.IsReachEnd,
	})
}

// SetStatus sets the footer status text.
func (m *Model) SetStatus(s string) {
	m.status = s
}

// SetError sets or clears (empty string) the footer error text.
func (m *Model) SetError(s string) {
	m.errText = s
}

// renderBody re-slices the rows into the viewport and reports the content
// change as a resize so the thumb follows content growth.
func (m *Model) renderBody() {
	m.visible = pagination.Apply(m.rows, m.pagination)

	lines := make([]string, len(m.visible))
	for i, r := range m.visible {
		lines[i] = m.renderRow(r, m.styles.Cell)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	// Shrinking content must not leave the offset past the end.
	m.viewport.SetYOffset(m.viewport.YOffset)

	m.notifier.Notify(scroll.Size{Width: m.viewport.Width, Height: m.viewport.Height})
}

func (m *Model) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(m.columns))
	for i, col := range m.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = runewidth.Truncate(cell, col.Width, ellipsis)
		parts[i] = runewidth.FillRight(cell, col.Width)
	}
	line := strings.Join(parts, strings.Repeat(" ", cellGap))
	line = runewidth.FillRight(runewidth.Truncate(line, m.viewport.Width, ""), m.viewport.Width)
	return style.Render(line)
}

// View implements tea.Model.
func (m *Model) View() string {
	header := make([]string, len(m.columns))
	for i, c := range m.columns {
		header[i] = c.Title
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderScrollbar())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderRow(header, m.styles.Header)+blankGlyph,
		body,
		m.renderFooter(),
	)
}

func (m *Model) renderScrollbar() string {
	h := m.viewport.Height
	if h <= 0 {
		return ""
	}

	lines := make([]string, h)
	start, n := m.thumbRows()
	if n == 0 || !m.engine.IsVisible() {
		for i := range lines {
			lines[i] = blankGlyph
		}
		return strings.Join(lines, "\n")
	}

	thumb := m.styles.Thumb.Render(thumbGlyph)
	if m.engine.ThumbStyle().Expanded {
		thumb = m.styles.ThumbExpanded.Render(thumbExpandedGlyph)
	}
	track := m.styles.Track.Render(trackGlyph)

	for i := range lines {
		if i >= start && i < start+n {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	meta := pagination.NewMeta(m.pagination, len(m.rows))
	parts := []string{
		fmt.Sprintf("page %d/%d", meta.CurrentPage, max(1, meta.TotalPages)),
		fmt.Sprintf("%d rows", meta.TotalItems),
	}

	if m.fetchMore != nil {
		switch {
		case m.fetchMore.IsFetching:
			parts = append(parts, "loading…")
		case m.fetchMore.IsReachEnd:
			parts = append(parts, "end of data")
		}
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	footer := m.styles.Footer.Render(runewidth.Truncate(strings.Join(parts, " · "), m.width, ellipsis))
	if m.errText != "" {
		footer += " " + m.styles.Error.Render(m.errText)
	}
	return footer
}

// Close releases the scroll engine. The model must not be used afterwards.
func (m *Model) Close() {
	m.engine.Close()
}

// Engine exposes the scroll engine.
func (m *Model) Engine() *scroll.Engine {
	return m.engine
}

// VisibleRows returns the rows after pagination.
func (m *Model) VisibleRows() []Row {
	return m.visible
}

// RowCount returns the number of rows in the full set.
func (m *Model) RowCount() int {
	return len(m.rows)
}

// YOffset returns the viewport's scroll offset.
func (m *Model) YOffset() int {
	return m.viewport.YOffset
}

// BodyHeight returns the number of visible body rows.
func (m *Model) BodyHeight() int {
	return m.viewport.Height
}

// ScrollbarColumn returns the screen column of the scrollbar.
func (m *Model) ScrollbarColumn() int {
	return m.originX + m.width - scrollbarWidth
}
