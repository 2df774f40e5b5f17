package catalog

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// English is the reference locale: plain keys resolve to themselves, only
// pluralized messages and the list delimiter need registration.
func init() {
	en := language.English

	message.SetString(en, listDelimiterKey, ", ")

	message.Set(en, "imported %d notes", plural.Selectf(1, "",
		plural.One, "imported %d note",
		plural.Other, "imported %d notes"))
	message.Set(en, "updated %d notes", plural.Selectf(1, "",
		plural.One, "updated %d note",
		plural.Other, "updated %d notes"))
	message.Set(en, "skipped %d notes", plural.Selectf(1, "",
		plural.One, "skipped %d note",
		plural.Other, "skipped %d notes"))
	message.Set(en, "exported %d notes", plural.Selectf(1, "",
		plural.One, "exported %d note",
		plural.Other, "exported %d notes"))
}
