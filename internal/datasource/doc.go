// Package datasource supplies table rows in batches for infinite scroll.
//
// Sources page by offset and limit. Loader adapts a Source to Bubble Tea:
// each load runs as a tea.Cmd off the event loop and reports back with a
// BatchLoadedMsg. Concurrent loads of the same batch collapse into one
// query via singleflight.
package datasource
