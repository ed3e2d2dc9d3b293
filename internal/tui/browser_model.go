package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"

	"github.com/rshade/tablekit/internal/datasource"
	"github.com/rshade/tablekit/internal/logging"
	"github.com/rshade/tablekit/internal/pagination"
	"github.com/rshade/tablekit/internal/scroll"
	"github.com/rshade/tablekit/internal/tui/table"
)

// BrowserState represents the current state of the record browser.
type BrowserState int

const (
	// BrowserStateLoading indicates the first batch is being fetched.
	BrowserStateLoading BrowserState = iota
	// BrowserStateReady indicates rows are on screen.
	BrowserStateReady
	// BrowserStateError indicates the last fetch failed.
	BrowserStateError
)

// recordColumns are the column widths for datasource records.
//
//nolint:gochecknoglobals // Fixed layout shared by every browser.
var recordColumns = []int{7, 28, 8, 10, 9}

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	Pagination *pagination.Options
	Scroll     scroll.Options
	Logger     *zerolog.Logger
}

// BrowserModel is an infinite-scroll record browser. It loads batches from
// a datasource.Loader whenever the table's fetch-more gate fires.
type BrowserModel struct {
	ctx     context.Context
	loader  *datasource.Loader
	table   *table.Model
	printer *message.Printer
	logger  zerolog.Logger
	keys    browserKeys

	pagination *pagination.Options

	state    BrowserState
	loaded   int
	fetching bool
	reachEnd bool
	err      error
}

// NewBrowserModel creates a browser reading batches through loader.
func NewBrowserModel(ctx context.Context, loader *datasource.Loader, opts BrowserOptions) *BrowserModel {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	titles := datasource.Columns()
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		columns[i] = table.Column{Title: title, Width: recordColumns[i]}
	}

	m := &BrowserModel{
		ctx:        ctx,
		loader:     loader,
		printer:    datasource.NewPrinter(),
		logger:     logging.ComponentLogger(logger, "browser"),
		keys:       defaultBrowserKeys(),
		pagination: opts.Pagination,
		state:      BrowserStateLoading,
	}
	m.table = table.New(table.Options{
		Columns:    columns,
		Pagination: opts.Pagination,
		Scroll:     opts.Scroll,
		Logger:     &m.logger,
	})
	m.syncFetchMore()
	return m
}

// Init loads the first batch (Bubble Tea interface).
func (m *BrowserModel) Init() tea.Cmd {
	return m.startFetch()
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.table.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPage):
			return m, m.turnPage(1)
		case key.Matches(msg, m.keys.PrevPage):
			return m, m.turnPage(-1)
		case key.Matches(msg, m.keys.Retry):
			if m.state == BrowserStateError {
				return m, m.startFetch()
			}
			return m, nil
		}
	case datasource.BatchLoadedMsg:
		return m, m.handleBatchLoaded(msg)
	case tea.WindowSizeMsg:
		m.table.SetSize(msg.Width, msg.Height)
		if m.state == BrowserStateReady && m.needsMore() {
			return m, m.startFetch()
		}
		return m, nil
	}

	_, cmd := m.table.Update(msg)
	return m, cmd
}

// View renders the table (Bubble Tea interface).
func (m *BrowserModel) View() string {
	return m.table.View()
}

// startFetch marks a fetch in flight and returns the load command.
func (m *BrowserModel) startFetch() tea.Cmd {
	if m.fetching || m.reachEnd {
		return nil
	}
	m.fetching = true
	m.syncFetchMore()
	m.logger.Debug().Int("offset", m.loaded).Msg("loading batch")
	return m.loader.Load(m.ctx, m.loaded)
}

func (m *BrowserModel) handleBatchLoaded(msg datasource.BatchLoadedMsg) tea.Cmd {
	m.fetching = false

	if msg.Err != nil {
		m.state = BrowserStateError
		m.err = msg.Err
		m.table.SetError(msg.Err.Error())
		m.syncFetchMore()
		return nil
	}

	rows := make([]table.Row, len(msg.Records))
	for i, r := range msg.Records {
		rows[i] = r.Cells(m.printer)
	}

	m.state = BrowserStateReady
	m.err = nil
	m.table.SetError("")
	m.loaded += len(msg.Records)
	m.reachEnd = msg.ReachEnd
	m.table.AppendRows(rows...)
	m.table.SetStatus(m.printer.Sprintf("%d loaded", m.loaded))
	m.clampPage()
	m.syncFetchMore()

	if m.needsMore() {
		return m.startFetch()
	}
	return nil
}

// paged reports whether rows are shown one auto-sliced page at a time.
func (m *BrowserModel) paged() bool {
	return m.pagination != nil && !m.pagination.DisableAutoSlicing
}

// needsMore reports whether the current view is still short of rows. A
// paged view needs its current page loaded; an unpaged body needs to
// overflow, since a screen that cannot scroll never reaches the gate.
func (m *BrowserModel) needsMore() bool {
	if m.paged() {
		return m.loaded < (m.pagination.Current+1)*m.pagination.EffectivePageSize()
	}
	return !m.table.Engine().Overflows()
}

// clampPage moves back to the last page once the source is exhausted and
// the current page turned out to be past the end.
func (m *BrowserModel) clampPage() {
	if !m.paged() || !m.reachEnd || m.loaded == 0 {
		return
	}
	last := (m.loaded - 1) / m.pagination.EffectivePageSize()
	if m.pagination.Current > last {
		m.setPage(last)
	}
}

func (m *BrowserModel) setPage(page int) {
	p := *m.pagination
	p.Current = page
	m.pagination = &p
	m.table.SetPagination(&p)
}

// turnPage moves the current page by delta and loads the target page when
// it is not loaded yet. Past the last loaded page it only moves while the
// source may hold more rows. It is a no-op without auto-sliced pagination.
func (m *BrowserModel) turnPage(delta int) tea.Cmd {
	if !m.paged() {
		return nil
	}

	meta := pagination.NewMeta(m.pagination, m.loaded)
	next := m.pagination.Current + delta
	if next < 0 || (next >= max(1, meta.TotalPages) && m.reachEnd) {
		return nil
	}

	m.setPage(next)
	if m.needsMore() {
		return m.startFetch()
	}
	return nil
}

// syncFetchMore publishes the current guard flags to the table.
func (m *BrowserModel) syncFetchMore() {
	m.table.SetFetchMore(&table.FetchMore{
		Callback:   m.startFetch,
		IsFetching: m.fetching,
		IsReachEnd: m.reachEnd,
	})
}

// Pagination returns the current pagination options, nil when unpaged.
func (m *BrowserModel) Pagination() *pagination.Options {
	return m.pagination
}

// State returns the browser state.
func (m *BrowserModel) State() BrowserState {
	return m.state
}

// Loaded returns the number of records loaded so far.
func (m *BrowserModel) Loaded() int {
	return m.loaded
}

// Fetching reports whether a batch is in flight.
func (m *BrowserModel) Fetching() bool {
	return m.fetching
}

// ReachEnd reports whether the source is exhausted.
func (m *BrowserModel) ReachEnd() bool {
	return m.reachEnd
}

// Err returns the last fetch error.
func (m *BrowserModel) Err() error {
	return m.err
}

// Table exposes the underlying table model.
func (m *BrowserModel) Table() *table.Model {
	return m.table
}
