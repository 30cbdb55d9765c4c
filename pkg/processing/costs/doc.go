// Package costs converts provider-reported token usage into USD cost
// figures using an immutable, process-wide pricing table.
//
// The table is constructed once at process start and is read-only
// thereafter. Lookups fall back to a designated default tier when a model
// has no pricing row, so an unknown model degrades cost accuracy but never
// fails a request. Adding a model is a one-row change.
package costs
