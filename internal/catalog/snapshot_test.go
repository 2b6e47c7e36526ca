package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/storefront-service/internal/model"
)

func sample() Snapshot {
	return Snapshot{
		{ID: 1, Name: "Blue Shirt", Category: "Tops", Price: "$12.00"},
		{ID: 2, Name: "Cap", Category: "Hats", Price: "$5.00"},
		{ID: 3, Name: "Polo", Category: "T-SHIRTS", Price: "$20.00"},
		{ID: 2, Name: "Cap (duplicate)", Category: "Hats", Price: "$6.00"},
	}
}

func names(s Snapshot) []string {
	out := make([]string, 0, len(s))
	for _, p := range s {
		out = append(out, p.Name)
	}
	return out
}

func TestSearchMatchesNameOrCategoryCaseInsensitive(t *testing.T) {
	got := sample().Search("  SHIRT ")
	assert.Equal(t, []string{"Blue Shirt", "Polo"}, names(got))
}

func TestSearchEmptyKeepsEverythingInOrder(t *testing.T) {
	s := sample()
	assert.Equal(t, names(s), names(s.Search("")))
	assert.Equal(t, names(s), names(s.Search("   ")))
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, sample().Search("boots"))
}

func TestFindFirstMatchWins(t *testing.T) {
	p, err := sample().Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Cap", p.Name)
	assert.Equal(t, model.Price("$5.00"), p.Price)
}

func TestFindMissing(t *testing.T) {
	_, err := sample().Find(42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
