package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenRows() []int {
	rows := make([]int, 10)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		disable bool
		want    []int
	}{
		{
			name:   "second page of one",
			window: Window{PageIndex: 1, PageSize: 1},
			want:   []int{2},
		},
		{
			name:   "first page",
			window: Window{PageIndex: 0, PageSize: 3},
			want:   []int{1, 2, 3},
		},
		{
			name:   "partial last page",
			window: Window{PageIndex: 3, PageSize: 3},
			want:   []int{10},
		},
		{
			name:   "page past the end",
			window: Window{PageIndex: 5, PageSize: 3},
			want:   []int{},
		},
		{
			name:    "auto slicing disabled",
			window:  Window{PageIndex: 1, PageSize: 1},
			disable: true,
			want:    tenRows(),
		},
		{
			name:   "negative page",
			window: Window{PageIndex: -1, PageSize: 3},
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slice(tenRows(), tt.window, tt.disable)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	rows := tenRows()

	assert.Equal(t, rows, Apply(rows, nil), "nil options pass through")
	assert.Len(t, Apply(rows, &Options{Current: 1, PageSize: 1}), 1)
	assert.Len(t, Apply(rows, &Options{Current: 1, PageSize: 1, DisableAutoSlicing: true}), 10)

	// Default page size of 10 holds every row on the first page.
	assert.Len(t, Apply(rows, &Options{}), 10)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "defaults", opts: *NewOptions()},
		{name: "unset page size", opts: Options{Current: 2}},
		{name: "negative page", opts: Options{Current: -1}, wantErr: ErrInvalidPage},
		{name: "page size too large", opts: Options{PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
		{name: "negative page size", opts: Options{PageSize: -3}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(&Options{Current: 1, PageSize: 3}, 10)
	assert.Equal(t, Meta{
		CurrentPage: 2,
		PageSize:    3,
		TotalPages:  4,
		TotalItems:  10,
		HasPrevious: true,
		HasNext:     true,
	}, meta)

	last := NewMeta(&Options{Current: 3, PageSize: 3}, 10)
	assert.False(t, last.HasNext)

	single := NewMeta(nil, 42)
	assert.Equal(t, 1, single.TotalPages)
	assert.Equal(t, 42, single.PageSize)
	assert.False(t, single.HasNext)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{name: "empty", sortStr: "", wantField: "", wantOrder: "asc"},
		{name: "field only", sortStr: "name", wantField: "name", wantOrder: "asc"},
		{name: "field and order", sortStr: "amount:DESC", wantField: "amount", wantOrder: "desc"},
		{name: "too many parts", sortStr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
		{name: "bad order", sortStr: "name:up", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	valid := []string{"id", "name"}
	assert.NoError(t, ValidateSortField("", valid))
	assert.NoError(t, ValidateSortField("name", valid))
	assert.ErrorIs(t, ValidateSortField("owner", valid), ErrInvalidSortField)
}
