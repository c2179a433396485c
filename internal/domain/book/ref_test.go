package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	ref := ParseRef("104")
	assert.True(t, ref.IsID())
	assert.Equal(t, uint(104), ref.ID())

	ref = ParseRef("Dune")
	assert.False(t, ref.IsID())
	assert.Equal(t, "Dune", ref.Title())

	ref = ParseRef("  Dune  ")
	assert.Equal(t, "Dune", ref.Title())

	assert.True(t, ParseRef("").IsZero())
	assert.True(t, ParseRef("   ").IsZero())
}

func TestByTitle_NumericTitleStaysTitle(t *testing.T) {
	// ParseRef would classify "1984" as an id; the explicit constructor
	// keeps it addressable as a title.
	ref := ByTitle("1984")
	assert.False(t, ref.IsID())
	assert.Equal(t, "1984", ref.Title())

	assert.True(t, ParseRef("1984").IsID())
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "id:104", ByID(104).String())
	assert.Equal(t, "title:Dune", ByTitle("Dune").String())
}
