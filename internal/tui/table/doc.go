// Package table provides a Bubble Tea table body with a synthetic scrollbar.
//
// Rows are rendered into a bubbles viewport, which acts as the real scroll
// container. A one-column scrollbar to the right of the body is driven by a
// scroll.Engine: wheel and keyboard scrolling move the viewport, the thumb
// mirrors the viewport offset, and dragging the thumb or clicking the track
// writes the offset back.
//
// The host program must enable mouse motion reporting
// (tea.WithMouseAllMotion) for hover and drag to work.
package table
