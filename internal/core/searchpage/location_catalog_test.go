package searchpage

import (
	"avacasa/internal/core/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLocations() []domain.SearchLocation {
	north := "north-goa"
	return []domain.SearchLocation{
		{ID: "north-goa", Name: "North Goa", Slug: "north-goa", Kind: domain.LocationKindMajor, PropertyCount: 40},
		{ID: "assagao", Name: "Assagao", Slug: "assagao", Kind: domain.LocationKindMinor, MajorLocationID: &north, PropertyCount: 12},
		{ID: "anjuna", Name: "ANJUNA", Slug: "anjuna", Kind: domain.LocationKindMinor, MajorLocationID: &north, PropertyCount: 5},
		{ID: "grossstadt", Name: "Großstadt", Slug: "grossstadt", Kind: domain.LocationKindMajor},
	}
}

func TestLocationCatalog_LoadsOnceAndFilters(t *testing.T) {
	api := &fakeListingAPI{locations: sampleLocations()}
	catalog := NewLocationCatalog(api)

	require.NoError(t, catalog.Load(context.Background()))
	require.NoError(t, catalog.Load(context.Background()))
	assert.Equal(t, 1, api.locCalls)

	got := catalog.Filter("anj")
	require.Len(t, got, 1)
	assert.Equal(t, "anjuna", got[0].ID)

	got = catalog.Filter("GOA")
	require.Len(t, got, 1)
	assert.Equal(t, "north-goa", got[0].ID)

	// case folding: ß сворачивается в ss
	got = catalog.Filter("GROSS")
	require.Len(t, got, 1)
	assert.Equal(t, "grossstadt", got[0].ID)

	assert.Len(t, catalog.Filter("  "), 4)
	assert.Empty(t, catalog.Filter("mumbai"))

	loc, ok := catalog.Lookup("assagao")
	assert.True(t, ok)
	assert.Equal(t, "Assagao", loc.Name)
}

func TestLocationCatalog_RetriesAfterError(t *testing.T) {
	api := &fakeListingAPI{locErr: errors.New("timeout")}
	catalog := NewLocationCatalog(api)

	assert.Error(t, catalog.Load(context.Background()))

	api.locErr = nil
	api.locations = sampleLocations()
	require.NoError(t, catalog.Load(context.Background()))
	assert.Equal(t, 2, api.locCalls)
	assert.Len(t, catalog.Filter(""), 4)
}
