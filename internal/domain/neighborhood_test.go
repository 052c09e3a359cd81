package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborhoodID_Deterministic(t *testing.T) {
	a := NeighborhoodID(Location{City: "Pune", State: "Maharashtra"})
	b := NeighborhoodID(Location{City: "Pune", State: "Maharashtra"})

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestNeighborhoodID_NormalizesCaseAndWhitespace(t *testing.T) {
	a := NeighborhoodID(Location{City: "Pune", State: "Maharashtra"})
	b := NeighborhoodID(Location{City: "  PUNE ", State: "maharashtra"})
	c := NeighborhoodID(Location{City: "pune", State: " MAHARASHTRA  "})

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestNeighborhoodID_DifferentAreasDiffer(t *testing.T) {
	pune := NeighborhoodID(Location{City: "Pune", State: "Maharashtra"})
	mumbai := NeighborhoodID(Location{City: "Mumbai", State: "Maharashtra"})

	assert.NotEqual(t, pune, mumbai)
}

func TestNeighborhoodID_AddressFallback(t *testing.T) {
	id := NeighborhoodID(Location{Address: "12 MG Road"})

	assert.NotEqual(t, "unlocated", id)
	assert.Equal(t, id, NeighborhoodID(Location{Address: "12  mg  road"}))
}

func TestNeighborhoodID_EmptyLocation(t *testing.T) {
	assert.Equal(t, "unlocated", NeighborhoodID(Location{}))
	assert.Equal(t, "unlocated", NeighborhoodID(Location{Latitude: 18.5, Longitude: 73.8}))
}
