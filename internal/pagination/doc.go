// Package pagination provides the client-side table-state engine for the
// scraped-document report.
//
// This package contains:
//   - Comparator: order-aware record comparison by sort key
//   - ComputeVisibleRows: sorting plus page windowing with padding rows
//   - Table: the pagination state machine driven by user actions
//   - Meta: display metadata for the current page ("11–12 of 12")
//
// The engine never mutates the caller's rows, never fails on out-of-range
// pages, and keeps page persistence behind an injected pagestore.Store.
package pagination
