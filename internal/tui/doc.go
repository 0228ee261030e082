// Package tui renders the scraped-document report as an interactive Bubble
// Tea table. All table state lives in pagination.Table; this package only
// maps keys to its transitions and draws the visible window.
package tui
