// Package units implements the closed set of quantity kinds a journal
// entry's amount can carry, and the conversions between amounts and their
// human-readable and canonical machine representations.
package units

// Stable unit ids. They are persisted and exchanged in CSV files, so they
// must never change meaning across versions.
const (
	IDNone         = "none"
	IDClothingSize = "clothingSize"
	IDFraction     = "fraction"
	IDSmallNumbers = "smallNumbers"
	IDDouble       = "double"
)

// Choice is one named discrete value belonging to a unit.
type Choice struct {
	Value float64

	// Name is a message catalog key for the display name.
	Name string

	// HTML optionally carries a rich rendering of the choice, e.g. a
	// fraction glyph. Empty means plain text only.
	HTML string
}

// Unit describes how an entry's numeric amount is interpreted and shown.
type Unit struct {
	// ID is the stable identifier, never localized.
	ID string

	// Name is a message catalog key for the localized display name.
	Name string

	// Choices constrains the amount to a discrete set for round-trip
	// formatting. Empty means free numeric input.
	Choices []Choice

	// Default is the amount used when parsing fails.
	Default float64

	// Visible controls whether the unit is offered in the editor.
	// Invisible units remain importable and displayable.
	Visible bool
}

func (u *Unit) choice(amount float64) (Choice, bool) {
	for _, c := range u.Choices {
		if c.Value == amount {
			return c, true
		}
	}
	return Choice{}, false
}

// Set is an ordered collection of units with id lookup. Unit tables are
// configuration: components receive a Set instead of reaching for globals,
// so tests can run against alternative tables.
type Set struct {
	units []*Unit
	byID  map[string]*Unit
}

// NewSet builds a set from the given units. Ids must be unique.
func NewSet(us ...*Unit) *Set {
	s := &Set{units: us, byID: make(map[string]*Unit, len(us))}
	for _, u := range us {
		s.byID[u.ID] = u
	}
	return s
}

// All returns the units in declaration order.
func (s *Set) All() []*Unit {
	return s.units
}

// ByID resolves a persisted unit id.
func (s *Set) ByID(id string) (*Unit, bool) {
	u, ok := s.byID[id]
	return u, ok
}

// DefaultSet returns the unit tables the application ships with.
func DefaultSet() *Set {
	return NewSet(
		&Unit{
			ID:      IDNone,
			Name:    "No unit",
			Visible: true,
		},
		&Unit{
			ID:   IDClothingSize,
			Name: "Clothing size",
			Choices: []Choice{
				{Value: 50, Name: "50"},
				{Value: 56, Name: "56"},
				{Value: 62, Name: "62"},
				{Value: 68, Name: "68"},
				{Value: 74, Name: "74"},
				{Value: 80, Name: "80"},
				{Value: 86, Name: "86"},
				{Value: 92, Name: "92"},
				{Value: 98, Name: "98"},
				{Value: 104, Name: "104"},
				{Value: 110, Name: "110"},
			},
			Visible: true,
		},
		&Unit{
			ID:   IDFraction,
			Name: "Fraction",
			Choices: []Choice{
				{Value: 0.25, Name: "1/4", HTML: "&frac14;"},
				{Value: 0.5, Name: "1/2", HTML: "&frac12;"},
				{Value: 0.75, Name: "3/4", HTML: "&frac34;"},
				{Value: 1, Name: "1"},
			},
			Visible: true,
		},
		&Unit{
			// Kept for old exports, no longer offered in the editor.
			ID:   IDSmallNumbers,
			Name: "Small numbers",
			Choices: []Choice{
				{Value: 1, Name: "1"},
				{Value: 2, Name: "2"},
				{Value: 3, Name: "3"},
				{Value: 4, Name: "4"},
				{Value: 5, Name: "5"},
			},
		},
		&Unit{
			ID:      IDDouble,
			Name:    "Number",
			Visible: true,
		},
	)
}
