package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eneda8/nearby/pkg/places"
)

func pl(id string) places.Place {
	return places.Place{ID: id, DisplayName: places.DisplayName{Text: id}}
}

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	first := pl("a")
	first.FormattedAddress = "first seen"
	dup := pl("a")
	dup.FormattedAddress = "second seen"

	out := Dedupe([][]places.Place{
		{first, pl("b")},
		{dup, pl("c")},
	})

	ids := make([]string, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "first seen", out[0].FormattedAddress)
}

func TestDedupeDropsMissingIDs(t *testing.T) {
	out := Dedupe([][]places.Place{
		{pl("a"), {DisplayName: places.DisplayName{Text: "anonymous"}}},
	})
	assert.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestDedupePreservesBatchOrder(t *testing.T) {
	out := Dedupe([][]places.Place{
		{pl("z"), pl("y")},
		{},
		{pl("x"), pl("z")},
	})
	ids := make([]string, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"z", "y", "x"}, ids)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([][]places.Place{{}, {}}))
}
