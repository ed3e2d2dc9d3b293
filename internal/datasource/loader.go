package datasource

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/tablekit/internal/logging"
)

// BatchLoadedMsg reports the result of one Loader.Load.
type BatchLoadedMsg struct {
	Offset  int
	Records []Record
	// ReachEnd is true when the batch came back short.
	ReachEnd bool
	Err      error
}

// Loader fetches batches from a Source as Bubble Tea commands.
type Loader struct {
	source Source
	limit  int
	logger zerolog.Logger
	group  singleflight.Group
}

// NewLoader creates a loader fetching limit records per batch.
func NewLoader(source Source, limit int, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		limit:  limit,
		logger: logging.ComponentLogger(logger, "loader"),
	}
}

// BatchSize returns the records requested per batch.
func (l *Loader) BatchSize() int {
	return l.limit
}

// Load returns a command fetching the batch at offset.
func (l *Loader) Load(ctx context.Context, offset int) tea.Cmd {
	return func() tea.Msg {
		return l.fetch(ctx, offset)
	}
}

func (l *Loader) fetch(ctx context.Context, offset int) BatchLoadedMsg {
	key := strconv.Itoa(offset) + ":" + strconv.Itoa(l.limit)

	v, err, shared := l.group.Do(key, func() (interface{}, error) {
		return l.source.Fetch(ctx, offset, l.limit)
	})
	if err != nil {
		l.logger.Error().Err(err).Int("offset", offset).Msg("batch load failed")
		return BatchLoadedMsg{Offset: offset, Err: err}
	}

	records, _ := v.([]Record)
	l.logger.Debug().
		Int("offset", offset).
		Int("count", len(records)).
		Bool("shared", shared).
		Msg("batch loaded")

	return BatchLoadedMsg{
		Offset:   offset,
		Records:  records,
		ReachEnd: len(records) < l.limit,
	}
}
