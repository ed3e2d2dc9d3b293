package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/datasource"
	"github.com/rshade/tablekit/internal/logging"
	"github.com/rshade/tablekit/internal/pagination"
	"github.com/rshade/tablekit/internal/scroll"
	"github.com/rshade/tablekit/internal/tui"
)

// Data source names accepted by --source.
const (
	sourceMemory = "memory"
	sourceSQLite = "sqlite"
)

const (
	defaultDemoRows = 10000
	sqliteMemoryDSN = ":memory:"
)

// Demo errors.
var (
	ErrNotTerminal   = errors.New("demo needs an interactive terminal")
	ErrUnknownSource = errors.New("unknown data source")
	ErrInvalidRows   = errors.New("rows must not be negative")
)

// demoOptions holds the demo flags.
type demoOptions struct {
	rows        int
	batch       int
	source      string
	sort        string
	page        int
	pageSize    int
	noAutoSlice bool
}

func newDemoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Browse generated records in a scrollable table",
		Long: `Opens a full-screen table over generated records.

Rows load in batches as the scrollbar nears the bottom. Drag the thumb or
click the track to jump; the scrollbar hides after a moment without
scrolling. With --page the rows are shown one page at a time (n/p to turn).`,
		Example: `  # Infinite scrolling over 10,000 in-memory records
  tablekit demo

  # 500 records from SQLite sorted by amount, newest first
  tablekit demo --source sqlite --rows 500 --sort amount:desc

  # Paged view, 25 rows per page
  tablekit demo --page 1 --page-size 25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", defaultDemoRows, "number of records to generate")
	cmd.Flags().IntVar(&opts.batch, "batch", 0, "records per fetch (0 = config table.batch_size)")
	cmd.Flags().StringVar(&opts.source, "source", sourceMemory, "data source: memory or sqlite")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort as field or field:order (id, name, owner, amount)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "show one page at a time starting at this 1-based page (0 = no paging)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (0 = config table.page_size)")
	cmd.Flags().BoolVar(&opts.noAutoSlice, "no-auto-slice", false, "show every loaded row regardless of the page")

	return cmd
}

// runDemo checks the terminal, builds the browser and runs it full-screen.
func runDemo(cmd *cobra.Command, opts demoOptions) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	cfg := config.GetGlobalConfig()
	logPath, err := useFileOnlyLogging(cmd, cfg)
	if err != nil {
		return fmt.Errorf("switching to file logging: %w", err)
	}

	ctx := cmd.Context()
	source, err := openSource(ctx, opts)
	if err != nil {
		return err
	}
	defer closeSource(ctx, source)

	browser, err := newDemoBrowser(ctx, cfg, opts, source)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("source", opts.source).
		Int("rows", opts.rows).
		Str("log_file", logPath).
		Msg("starting demo")

	p := tea.NewProgram(browser,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// openSource builds the data source selected by opts.
func openSource(ctx context.Context, opts demoOptions) (datasource.Source, error) {
	if opts.rows < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRows, opts.rows)
	}

	field, order, err := pagination.ParseSort(opts.sort)
	if err != nil {
		return nil, err
	}
	if err = pagination.ValidateSortField(field, datasource.SortFields()); err != nil {
		return nil, err
	}

	switch opts.source {
	case sourceMemory, "":
		return datasource.NewMemorySource(opts.rows, field, order), nil
	case sourceSQLite:
		src, openErr := datasource.OpenSQLite(ctx, sqliteMemoryDSN, opts.rows, field, order)
		if openErr != nil {
			return nil, fmt.Errorf("opening sqlite source: %w", openErr)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownSource, opts.source, sourceMemory, sourceSQLite)
	}
}

func closeSource(ctx context.Context, source datasource.Source) {
	c, ok := source.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("closing data source")
	}
}

// newDemoBrowser wires the loader, scroll options and pagination for source.
func newDemoBrowser(
	ctx context.Context,
	cfg *config.Config,
	opts demoOptions,
	source datasource.Source,
) (*tui.BrowserModel, error) {
	batch := opts.batch
	if batch <= 0 {
		batch = cfg.Table.BatchSize
	}

	pager, err := demoPagination(cfg, opts)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	loader := datasource.NewLoader(source, batch, *log)

	return tui.NewBrowserModel(ctx, loader, tui.BrowserOptions{
		Pagination: pager,
		Scroll:     scrollOptions(cfg),
		Logger:     log,
	}), nil
}

// demoPagination returns nil for the infinite-scroll view.
func demoPagination(cfg *config.Config, opts demoOptions) (*pagination.Options, error) {
	if opts.page <= 0 && !opts.noAutoSlice && !cfg.Table.DisableAutoSlicing {
		return nil, nil //nolint:nilnil // nil options mean no pagination
	}

	size := opts.pageSize
	if size <= 0 {
		size = cfg.Table.PageSize
	}

	p := &pagination.Options{
		Current:            max(opts.page-1, 0),
		PageSize:           size,
		DisableAutoSlicing: opts.noAutoSlice || cfg.Table.DisableAutoSlicing,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func scrollOptions(cfg *config.Config) scroll.Options {
	return scroll.Options{
		IdleHide:       cfg.Scroll.IdleHide(),
		FrameInterval:  cfg.Scroll.FrameInterval(),
		FetchThreshold: cfg.Scroll.FetchThreshold,
	}
}
