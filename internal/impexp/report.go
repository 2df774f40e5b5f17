package impexp

import (
	"strings"

	"github.com/mlazarev/logbook/internal/catalog"
)

// Summary aggregates an import run. The caller shows exactly one message
// per run, never per-row output.
type Summary struct {
	Imported int
	Updated  int
	Skipped  int

	// Reason is the localized failure of the row that aborted the run,
	// empty when every row went through.
	Reason string

	// Empty marks a header-only or zero-length file.
	Empty bool
}

// IsError reports whether the run's message should be shown as an error.
func (s *Summary) IsError() bool {
	return s.Empty || s.Reason != ""
}

// Message renders the aggregated, localized report: the pluralized counts
// joined with the locale's delimiter, followed by the failure reason when
// a row aborted the run.
func (s *Summary) Message(cat *catalog.Catalog) string {
	if s.Empty {
		return cat.Sprintf("the file contains no notes")
	}
	parts := []string{
		cat.Sprintf("imported %d notes", s.Imported),
		cat.Sprintf("updated %d notes", s.Updated),
		cat.Sprintf("skipped %d notes", s.Skipped),
	}
	if s.Reason != "" {
		parts = append(parts, s.Reason)
	}
	return strings.Join(parts, cat.ListDelimiter())
}
