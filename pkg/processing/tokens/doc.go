// Package tokens estimates prompt token counts locally, before the
// upstream provider has reported authoritative usage. Estimates feed logs
// and metrics only; billing always uses provider-reported counts.
package tokens
