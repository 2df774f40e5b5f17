package models

// RowResult is the outcome of parsing a single CSV row: either an entry
// ready for reconciliation or a localized failure reason. Exactly one of
// the two is set.
type RowResult struct {
	entry  *Entry
	reason string
}

// Succeeded wraps a parsed entry.
func Succeeded(e *Entry) RowResult {
	return RowResult{entry: e}
}

// Failed wraps a human-readable failure reason.
func Failed(reason string) RowResult {
	return RowResult{reason: reason}
}

func (r RowResult) OK() bool {
	return r.entry != nil
}

// Entry returns the parsed entry, nil for failed rows.
func (r RowResult) Entry() *Entry {
	return r.entry
}

// Reason returns the failure reason, empty for successful rows.
func (r RowResult) Reason() string {
	return r.reason
}
