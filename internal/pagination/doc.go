// Package pagination provides client-side page slicing for the table body.
//
// This package contains:
//   - Options: the caller's pagination settings (page index, page size, auto-slicing)
//   - Window / Slice: the [start, end) page window and the slicer applied once per render
//   - Meta: page counts for the table footer
//   - ParseSort: "field" / "field:order" sort flag parsing shared by data sources
//
// When auto-slicing is disabled the caller has already paged the data and
// rows pass through unchanged.
package pagination
