package units

import (
	"strconv"
	"strings"

	"github.com/mlazarev/logbook/internal/catalog"
)

// Model binds a unit set to a message catalog and performs all amount
// conversions. Format/Parse speak the user's locale, Serialize/Deserialize
// speak the canonical exchange format and must never be shown to users.
type Model struct {
	set *Set
	cat *catalog.Catalog

	// locale separators, derived from the catalog once
	decSep   string
	groupSep string
}

// NewModel builds a model for the given set and locale catalog.
func NewModel(set *Set, cat *catalog.Catalog) *Model {
	m := &Model{set: set, cat: cat}
	m.decSep = between(cat.FormatNumber(1.1), 1)
	m.groupSep = between(cat.FormatNumber(1000), 3)
	return m
}

// between returns whatever the formatter put between the leading digit and
// the trailing digits of a sample number, i.e. the locale's separator.
func between(s string, trailing int) string {
	if len(s) <= 1+trailing {
		return ""
	}
	return s[1 : len(s)-trailing]
}

// Set returns the unit tables the model operates on.
func (m *Model) Set() *Set {
	return m.set
}

// UnitOrNone resolves a stable id, falling back to the no-unit variant for
// ids the set does not know.
func (m *Model) UnitOrNone(id string) *Unit {
	if u, ok := m.set.ByID(id); ok {
		return u
	}
	u, _ := m.set.ByID(IDNone)
	return u
}

// Resolve maps a persisted id or a localized display name to a unit.
// Ids win over names, so files exported under another locale still
// resolve correctly.
func (m *Model) Resolve(text string) (*Unit, bool) {
	if u, ok := m.set.ByID(text); ok {
		return u, true
	}
	for _, u := range m.set.All() {
		if m.cat.Sprintf(u.Name) == text {
			return u, true
		}
	}
	return nil, false
}

// Format renders amount for display: the matching choice's localized name
// when the amount hits a choice value exactly, locale-aware numeric text
// otherwise.
func (m *Model) Format(u *Unit, amount float64) string {
	if c, ok := u.choice(amount); ok {
		return m.cat.Sprintf(c.Name)
	}
	return m.cat.FormatNumber(amount)
}

// FormatHTML returns the rich rendering of the matching choice, if the
// amount hits a choice that defines one. Callers fall back to Format.
func (m *Model) FormatHTML(u *Unit, amount float64) (string, bool) {
	if c, ok := u.choice(amount); ok && c.HTML != "" {
		return c.HTML, true
	}
	return "", false
}

// Parse turns display text back into an amount. Choice names are tried
// first, then locale-aware numeric parsing; on total failure the unit's
// default is returned. Parse never fails.
func (m *Model) Parse(u *Unit, text string) float64 {
	t := strings.TrimSpace(text)
	for _, c := range u.Choices {
		if m.cat.Sprintf(c.Name) == t {
			return c.Value
		}
	}
	n := t
	if m.groupSep != "" {
		n = strings.ReplaceAll(n, m.groupSep, "")
	}
	if m.decSep != "" && m.decSep != "." {
		n = strings.ReplaceAll(n, m.decSep, ".")
	}
	v, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return u.Default
	}
	return v
}

// EditorUnit maps an entry's unit to one the editor can offer. Invisible
// units are coerced to the free-numeric variant when the amount carries
// information, to the no-unit variant otherwise. The coercion is
// presentation-only: callers must not write it back just for viewing.
func (m *Model) EditorUnit(u *Unit, amount float64) *Unit {
	if u.Visible {
		return u
	}
	id := IDNone
	if amount != 0 {
		id = IDDouble
	}
	if v, ok := m.set.ByID(id); ok {
		return v
	}
	return u
}

// Serialize renders amount in the canonical, locale-independent exchange
// format.
func Serialize(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Deserialize parses Serialize's output. Malformed text degrades to the
// unit's default value rather than failing.
func Deserialize(u *Unit, text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return u.Default
	}
	return v
}
