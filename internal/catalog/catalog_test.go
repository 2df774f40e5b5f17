package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, language.English, c.Tag())

	_, err = New("not a locale!")
	assert.Error(t, err)
}

func TestSprintfPlurals(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "imported 1 note", c.Sprintf("imported %d notes", 1))
	assert.Equal(t, "imported 3 notes", c.Sprintf("imported %d notes", 3))
	assert.Equal(t, "updated 0 notes", c.Sprintf("updated %d notes", 0))
	assert.Equal(t, "skipped 1 note", c.Sprintf("skipped %d notes", 1))
	assert.Equal(t, "exported 2 notes", c.Sprintf("exported %d notes", 2))
}

func TestSprintfUnknownKeyFallsBack(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Clothing size", c.Sprintf("Clothing size"))
}

func TestFormatNumber(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "1,234.5", en.FormatNumber(1234.5))
	assert.Equal(t, "0.25", en.FormatNumber(0.25))

	de, err := New("de")
	require.NoError(t, err)
	assert.Equal(t, "1.234,5", de.FormatNumber(1234.5))
}

func TestListDelimiter(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, ", ", c.ListDelimiter())
}
