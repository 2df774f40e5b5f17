// Package catalog resolves user-facing strings for a fixed locale.
//
// Message keys are the English format strings themselves; locales other
// than English register translations in messages.go. Unknown keys fall
// back to the key, so lookups never fail.
package catalog

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// listDelimiterKey joins fragments of aggregated messages, e.g. the
// imported/updated/skipped parts of an import report.
const listDelimiterKey = "list-delimiter"

// Catalog is a locale-bound message printer.
type Catalog struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a catalog for the given BCP 47 locale tag, e.g. "en" or "de".
func New(locale string) (*Catalog, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Catalog{tag: tag, p: message.NewPrinter(tag)}, nil
}

// Sprintf resolves key in the catalog's locale and interpolates args.
// Pluralized keys pick the grammatical form from their numeric argument.
func (c *Catalog) Sprintf(key message.Reference, args ...any) string {
	return c.p.Sprintf(key, args...)
}

// FormatNumber renders v with the locale's digit grouping and decimal
// separator.
func (c *Catalog) FormatNumber(v float64) string {
	return c.p.Sprintf("%v", number.Decimal(v))
}

// ListDelimiter returns the locale's fragment delimiter.
func (c *Catalog) ListDelimiter() string {
	return c.p.Sprintf(listDelimiterKey)
}

// Tag returns the locale the catalog was built for.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}
