package pagination

import (
	"math"
)

// Meta contains footer metadata about the paginated rows.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates pagination metadata from options and total count.
// CurrentPage is 1-based for display. Nil options, or disabled
// auto-slicing, describe a single page holding every row.
func NewMeta(o *Options, totalCount int) Meta {
	if o == nil || o.DisableAutoSlicing {
		return Meta{
			CurrentPage: 1,
			PageSize:    totalCount,
			TotalPages:  1,
			TotalItems:  totalCount,
		}
	}

	pageSize := o.EffectivePageSize()
	currentPage := o.Current + 1

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
