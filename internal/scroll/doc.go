// Package scroll coordinates a synthetic vertical scrollbar with a real
// scroll container.
//
// The container's scroll position is the single source of truth. Scroll
// events flow one way into the thumb geometry (the mirror), while drag and
// track-click gestures flow the other way by writing the container's scroll
// position and letting geometry re-derive on the next frame.
//
// Key pieces:
//   - Read / Mirror: metrics snapshot and the proportional thumb mapping
//   - DragController, Root: pointer capture for drag-to-scroll
//   - VisibilityController: idle auto-hide and hover expansion
//   - Gate: near-bottom infinite scroll trigger
//   - ResizeCoordinator: geometry invalidation on container resize
//
// Everything runs on the Bubble Tea event loop. Deferred work (idle timer,
// frame recompute) is expressed as tea.Cmd values whose messages must be fed
// back through Engine.Update.
package scroll
