package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

func names(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestBundled(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)
	require.NotEmpty(t, ds.Items())

	menu, err := ds.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	for _, item := range menu {
		assert.True(t, item.Available, item.Name)
	}
	assert.NotContains(t, names(menu), "Cheesecake")
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"not": "a list"}`))
	assert.Error(t, err)
}

func TestListMenu_KeepsDeclaredOrder(t *testing.T) {
	ds := New([]models.MenuItem{
		{ID: "1", Name: "B", Available: true},
		{ID: "2", Name: "Hidden", Available: false},
		{ID: "3", Name: "A", Available: true},
	})

	first, err := ds.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	second, err := ds.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, names(first))
	assert.Equal(t, first, second)
}

func TestListMenu_Bestsellers(t *testing.T) {
	ds := New([]models.MenuItem{
		{ID: "1", Name: "Thirty", Available: true, IsBestseller: true, SalesCount: 30},
		{ID: "2", Name: "Fifty", Available: true, IsBestseller: true, SalesCount: 50},
		{ID: "3", Name: "Ten", Available: true, IsBestseller: true, SalesCount: 10},
		{ID: "4", Name: "Plain", Available: true, SalesCount: 99},
	})

	got, err := ds.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true, BestsellersOnly: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fifty", "Thirty"}, names(got))
}

func TestListMenu_DoesNotExposeBackingArray(t *testing.T) {
	ds := New([]models.MenuItem{{ID: "1", Name: "Latte", Available: true}})
	got, err := ds.ListMenu(context.Background(), store.MenuFilter{})
	require.NoError(t, err)
	got[0].Name = "changed"

	again, err := ds.ListMenu(context.Background(), store.MenuFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Latte", again[0].Name)
}

func TestGetMenuItem(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	item, err := ds.GetMenuItem(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Latte", item.Name)

	_, err = ds.GetMenuItem(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
