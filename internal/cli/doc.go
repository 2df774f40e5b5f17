// Package cli implements the interactive logbook client: a small REPL
// over the journal service for adding, browsing, searching and editing
// notes, plus CSV import and export.
package cli
