// Package impexp implements the CSV import and export engines: the
// data-interchange format journal entries travel in between devices and
// backups, and the reconciliation of imported rows against the store.
package impexp

// Exchange column names. Import tolerates any column order and ignores
// unknown columns; export always writes all of them in this order.
const (
	colCreatedAt = "createdAt"
	colContent   = "content"
	colAmount    = "amount"    // human-readable, ignored on import
	colRawAmount = "rawAmount" // canonical machine amount
	colUnit      = "unit"      // stable unit id
	colStableID  = "stableId"  // merge key, optional on import
)

// TimeLayout is the exchange timestamp format: ISO-like with millisecond
// precision and a numeric UTC offset, never "Z".
const TimeLayout = "2006-01-02T15:04:05.000-0700"

// DefaultChunkSize is how many entries the export engine pulls from the
// store per page.
const DefaultChunkSize = 100

// indexColumns maps header names to their positions. The first occurrence
// of a duplicated name wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// field returns the value of the named column in rec. ok is false when the
// column is missing from the header or the record is too short to hold it.
func field(cols map[string]int, rec []string, name string) (string, bool) {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return "", false
	}
	return rec[i], true
}
