package cli

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/datasource"
	"github.com/rshade/tablekit/internal/pagination"
)

func TestDemoRequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}
	isolateConfig(t)

	_, err := executeRoot(t, nil, "demo")
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		src, err := openSource(ctx, demoOptions{rows: 12, source: sourceMemory})
		require.NoError(t, err)
		total, err := src.Total(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
	})

	t.Run("sqlite sorted", func(t *testing.T) {
		src, err := openSource(ctx, demoOptions{rows: 20, source: sourceSQLite, sort: "amount:desc"})
		require.NoError(t, err)
		t.Cleanup(func() { closeSource(ctx, src) })

		records, err := src.Fetch(ctx, 0, 20)
		require.NoError(t, err)
		require.Len(t, records, 20)
		for i := 1; i < len(records); i++ {
			assert.GreaterOrEqual(t, records[i-1].Amount, records[i].Amount)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := openSource(ctx, demoOptions{rows: 1, source: "postgres"})
		assert.ErrorIs(t, err, ErrUnknownSource)
	})

	t.Run("bad sort order", func(t *testing.T) {
		_, err := openSource(ctx, demoOptions{rows: 1, sort: "name:sideways"})
		assert.ErrorIs(t, err, pagination.ErrInvalidSortOrder)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := openSource(ctx, demoOptions{rows: 1, sort: "color"})
		assert.ErrorIs(t, err, pagination.ErrInvalidSortField)
	})

	t.Run("negative rows", func(t *testing.T) {
		_, err := openSource(ctx, demoOptions{rows: -1})
		assert.ErrorIs(t, err, ErrInvalidRows)
	})
}

func TestDemoPagination(t *testing.T) {
	tests := []struct {
		name    string
		opts    demoOptions
		mutate  func(*config.Config)
		want    *pagination.Options
		wantErr error
	}{
		{
			name: "infinite scroll",
			opts: demoOptions{},
		},
		{
			name: "first page from config size",
			opts: demoOptions{page: 1},
			want: &pagination.Options{Current: 0, PageSize: 10},
		},
		{
			name: "third page with flag size",
			opts: demoOptions{page: 3, pageSize: 25},
			want: &pagination.Options{Current: 2, PageSize: 25},
		},
		{
			name: "no auto slice flag",
			opts: demoOptions{noAutoSlice: true},
			want: &pagination.Options{PageSize: 10, DisableAutoSlicing: true},
		},
		{
			name:   "no auto slice config",
			opts:   demoOptions{},
			mutate: func(c *config.Config) { c.Table.DisableAutoSlicing = true },
			want:   &pagination.Options{PageSize: 10, DisableAutoSlicing: true},
		},
		{
			name:    "oversized page",
			opts:    demoOptions{page: 1, pageSize: 5000},
			wantErr: pagination.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			got, err := demoPagination(cfg, tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrollOptions(t *testing.T) {
	cfg := config.New()
	cfg.Scroll.IdleHideMS = 250
	cfg.Scroll.FetchThreshold = 2

	opts := scrollOptions(cfg)

	assert.Equal(t, 250*time.Millisecond, opts.IdleHide)
	assert.Equal(t, 16*time.Millisecond, opts.FrameInterval)
	assert.InDelta(t, 2.0, opts.FetchThreshold, 1e-9)
}

func TestNewDemoBrowser(t *testing.T) {
	ctx := context.Background()
	cfg := config.New()
	src := datasource.NewMemorySource(30, "", "")

	browser, err := newDemoBrowser(ctx, cfg, demoOptions{page: 2, pageSize: 5}, src)
	require.NoError(t, err)
	require.NotNil(t, browser.Pagination())
	assert.Equal(t, 1, browser.Pagination().Current)

	cmd := browser.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(datasource.BatchLoadedMsg)
	require.True(t, ok)
	assert.Len(t, msg.Records, 30, "30 rows come back in one short batch")
	assert.True(t, msg.ReachEnd)

	_, err = newDemoBrowser(ctx, cfg, demoOptions{page: 1, pageSize: -3}, src)
	require.NoError(t, err, "non-positive size falls back to config")
}
