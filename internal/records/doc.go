// Package records defines the scraped-document data model consumed by the
// report table and loads record snapshots from JSON files.
//
// A snapshot is either an object carrying a category and its rows:
//
//	{"category": {"title": "Decrees", "type": "decrees"}, "rows": [...]}
//
// or a bare array of rows, in which case the category comes from the caller.
package records
