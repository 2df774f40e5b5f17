package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlazarev/logbook/internal/catalog"
	"github.com/mlazarev/logbook/internal/units"
)

func newModel(t *testing.T, locale string) *units.Model {
	t.Helper()
	cat, err := catalog.New(locale)
	require.NoError(t, err)
	return units.NewModel(units.DefaultSet(), cat)
}

func TestDefaultSet(t *testing.T) {
	s := units.DefaultSet()

	ids := make([]string, 0)
	for _, u := range s.All() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{
		units.IDNone, units.IDClothingSize, units.IDFraction,
		units.IDSmallNumbers, units.IDDouble,
	}, ids)

	small, ok := s.ByID(units.IDSmallNumbers)
	require.True(t, ok)
	assert.False(t, small.Visible)

	_, ok = s.ByID("bogus")
	assert.False(t, ok)
}

func TestModelResolve(t *testing.T) {
	m := newModel(t, "en")

	u, ok := m.Resolve(units.IDFraction)
	require.True(t, ok)
	assert.Equal(t, units.IDFraction, u.ID)

	u, ok = m.Resolve("Clothing size")
	require.True(t, ok)
	assert.Equal(t, units.IDClothingSize, u.ID)

	_, ok = m.Resolve("furlongs")
	assert.False(t, ok)
}

func TestModelFormatParseRoundTrip(t *testing.T) {
	m := newModel(t, "en")

	for _, u := range m.Set().All() {
		for _, c := range u.Choices {
			got := m.Parse(u, m.Format(u, c.Value))
			assert.Equal(t, c.Value, got, "%s %v", u.ID, c.Value)
		}
	}

	double := m.UnitOrNone(units.IDDouble)
	for _, v := range []float64{0, 1, -2.5, 0.125, 1234.5} {
		assert.Equal(t, v, m.Parse(double, m.Format(double, v)), "%v", v)
	}
}

func TestModelFormat(t *testing.T) {
	m := newModel(t, "en")

	fraction := m.UnitOrNone(units.IDFraction)
	assert.Equal(t, "1/4", m.Format(fraction, 0.25))
	assert.Equal(t, "1/2", m.Format(fraction, 0.5))
	// Off-choice amounts fall back to numeric text.
	assert.Equal(t, "0.3", m.Format(fraction, 0.3))

	double := m.UnitOrNone(units.IDDouble)
	assert.Equal(t, "1,234.5", m.Format(double, 1234.5))
}

func TestModelFormatHTML(t *testing.T) {
	m := newModel(t, "en")
	fraction := m.UnitOrNone(units.IDFraction)

	html, ok := m.FormatHTML(fraction, 0.5)
	require.True(t, ok)
	assert.Equal(t, "&frac12;", html)

	// The whole-fraction choice has no rich form.
	_, ok = m.FormatHTML(fraction, 1)
	assert.False(t, ok)

	_, ok = m.FormatHTML(m.UnitOrNone(units.IDDouble), 0.5)
	assert.False(t, ok)
}

func TestModelParse(t *testing.T) {
	m := newModel(t, "en")

	double := m.UnitOrNone(units.IDDouble)
	assert.Equal(t, 1234.5, m.Parse(double, "1,234.5"))
	assert.Equal(t, 1234.5, m.Parse(double, "1234.5"))
	assert.Equal(t, 2.0, m.Parse(double, " 2 "))
	// Garbage degrades to the unit default.
	assert.Equal(t, 0.0, m.Parse(double, "not a number"))

	clothing := m.UnitOrNone(units.IDClothingSize)
	assert.Equal(t, 92.0, m.Parse(clothing, "92"))
}

func TestModelParseGermanLocale(t *testing.T) {
	m := newModel(t, "de")
	double := m.UnitOrNone(units.IDDouble)

	assert.Equal(t, 1234.5, m.Parse(double, "1.234,5"))
	assert.Equal(t, 0.5, m.Parse(double, "0,5"))
}

func TestModelUnitOrNone(t *testing.T) {
	m := newModel(t, "en")
	assert.Equal(t, units.IDDouble, m.UnitOrNone(units.IDDouble).ID)
	assert.Equal(t, units.IDNone, m.UnitOrNone("retiredUnit").ID)
}

func TestModelEditorUnit(t *testing.T) {
	m := newModel(t, "en")

	small := m.UnitOrNone(units.IDSmallNumbers)
	assert.Equal(t, units.IDDouble, m.EditorUnit(small, 3).ID)
	assert.Equal(t, units.IDNone, m.EditorUnit(small, 0).ID)

	fraction := m.UnitOrNone(units.IDFraction)
	assert.Equal(t, units.IDFraction, m.EditorUnit(fraction, 0.5).ID)
}

func TestSerializeDeserialize(t *testing.T) {
	u := &units.Unit{ID: "test", Default: 7}

	for _, v := range []float64{0, 0.25, -1.5, 1234.5, 0.1} {
		assert.Equal(t, v, units.Deserialize(u, units.Serialize(v)), "%v", v)
	}

	// Canonical form is locale independent.
	assert.Equal(t, "1234.5", units.Serialize(1234.5))
	assert.Equal(t, 7.0, units.Deserialize(u, "1,5"))
	assert.Equal(t, 7.0, units.Deserialize(u, ""))
}
