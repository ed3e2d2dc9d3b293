package pagination

import (
	"errors"
	"fmt"
)

// Pagination defaults and limits.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000
	DefaultPage     = 0
)

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 0")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
)

// Window is one page of a row set.
type Window struct {
	// PageIndex is the 0-based page number.
	PageIndex int
	// PageSize is the number of rows per page.
	PageSize int
}

// Bounds returns the window's [start, end) indexes clamped to a row set of
// length n.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (w Window) Bounds(n int) (start, end int) {
	if w.PageIndex < 0 || w.PageSize <= 0 {
		return 0, 0
	}
	start = min(w.PageIndex*w.PageSize, n)
	end = min(start+w.PageSize, n)
	return start, end
}

// Slice returns the rows visible for w. With disableAutoSlicing the rows are
// returned unchanged regardless of the window. A window past the end yields
// an empty slice.
func Slice[T any](rows []T, w Window, disableAutoSlicing bool) []T {
	if disableAutoSlicing {
		return rows
	}
	start, end := w.Bounds(len(rows))
	return rows[start:end]
}

// Options holds the table's pagination settings.
type Options struct {
	// Current is the 0-based page index.
	Current int

	// PageSize is the number of rows per page. Zero means DefaultPageSize.
	PageSize int

	// DisableAutoSlicing passes rows through unchanged; the caller pages
	// the data itself.
	DisableAutoSlicing bool
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Current:  DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks the page and page size (value receiver).
func (o Options) Validate() error {
	if o.Current < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, o.Current)
	}
	if o.PageSize != 0 && (o.PageSize < MinPageSize || o.PageSize > MaxPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, o.PageSize)
	}
	return nil
}

// EffectivePageSize returns PageSize, or DefaultPageSize when unset.
func (o Options) EffectivePageSize() int {
	if o.PageSize <= 0 {
		return DefaultPageSize
	}
	return o.PageSize
}

// Window returns the page window described by the options.
func (o Options) Window() Window {
	return Window{PageIndex: o.Current, PageSize: o.EffectivePageSize()}
}

// Apply slices rows per o. Nil options mean no pagination.
func Apply[T any](rows []T, o *Options) []T {
	if o == nil {
		return rows
	}
	return Slice(rows, o.Window(), o.DisableAutoSlicing)
}
