package catalog

import (
	"context"
	"testing"

	"greengrass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftCandidates(t *testing.T) {
	db := newTestDB(t)
	products := seedProducts(t, db)
	svc := NewProductService(db)
	ctx := context.Background()

	got, err := svc.GiftCandidates(ctx, "", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rose-gift-box", "gift-card"}, slugs(got))

	got, err = svc.GiftCandidates(ctx, "", []string{products[3].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"rose-gift-box"}, slugs(got))

	got, err = svc.GiftCandidates(ctx, "indoor", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ficus-lyrata"}, slugs(got))
}

func TestAddGift(t *testing.T) {
	selected, err := AddGift(nil, "a", 2)
	require.NoError(t, err)
	selected, err = AddGift(selected, "b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, selected)

	same, err := AddGift(selected, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, selected, same)

	_, err = AddGift(selected, "c", 2)
	assert.ErrorIs(t, err, ErrSelectionFull)

	assert.Equal(t, []string{"b"}, RemoveGift(selected, "a"))
	assert.Equal(t, []string{"a", "b"}, selected)
}

func slugs(products []models.Product) []string {
	var out []string
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}
