package searchpage

import (
	"avacasa/internal/core/domain"
	"context"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, api *fakeListingAPI, initial url.Values) (*PageController, *manualClock, *recordingEffects, *recordingHistory) {
	t.Helper()
	clock := &manualClock{}
	effects := &recordingEffects{}
	history := &recordingHistory{}
	c := NewPageController(PageConfig{
		API:          api,
		History:      history,
		Effects:      effects,
		Scheduler:    clock,
		InitialQuery: initial,
		PageSize:     12,
	})
	t.Cleanup(c.Close)
	return c, clock, effects, history
}

func TestPageController_SearchScenario(t *testing.T) {
	api := &fakeListingAPI{}
	c, _, effects, history := newTestController(t, api, nil)
	ctx := context.Background()

	c.Mount(ctx)
	c.Wait()
	c.Search(ctx, "Goa villa")
	c.Wait()
	c.SetPropertyType(ctx, typePtr(domain.PropertyTypeVilla))
	c.Wait()
	c.SetPriceRange(ctx, floatPtr(5000000), nil)
	c.Wait()

	queries := api.recordedQueries()
	require.Len(t, queries, 4)
	assert.Contains(t, queries[3], "search=Goa+villa&propertyType=VILLA&minPrice=5000000&page=1")
	assert.Equal(t, "search=Goa+villa&type=villa&minPrice=5000000", history.last())

	view := c.View()
	require.NotNil(t, view.Empty)
	assert.Contains(t, view.Empty.Message, "Goa villa")
	assert.Greater(t, effects.renders, 0)
}

func TestPageController_HydratesFromURL(t *testing.T) {
	api := &fakeListingAPI{}
	initial, err := url.ParseQuery("type=holiday-home&page=2&bedrooms=x")
	require.NoError(t, err)
	c, _, _, _ := newTestController(t, api, initial)

	c.Mount(context.Background())
	c.Wait()

	f := c.Filters()
	require.NotNil(t, f.PropertyType)
	assert.Equal(t, domain.PropertyTypeHolidayHome, *f.PropertyType)
	assert.Nil(t, f.Bedrooms)
	assert.Equal(t, "propertyType=HOLIDAY_HOME&page=2&limit=12", api.recordedQueries()[0])
}

func TestPageController_PansDebounceIntoOneFetch(t *testing.T) {
	api := &fakeListingAPI{}
	c, clock, _, _ := newTestController(t, api, nil)
	c.Mount(context.Background())
	c.Wait()

	pans := []domain.MapBounds{
		{North: 15.8, South: 15.0, East: 74.0, West: 73.5},
		{North: 15.9, South: 15.1, East: 74.1, West: 73.6},
		{North: 16.0, South: 15.2, East: 74.2, West: 73.7},
	}
	for _, b := range pans {
		c.OnBoundsChanged(b)
		clock.Advance(ViewportDebounceDelay / 5)
	}
	assert.Len(t, api.recordedQueries(), 1)

	clock.Advance(ViewportDebounceDelay)
	c.Wait()

	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	values, err := url.ParseQuery(queries[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"north":16,"south":15.2,"east":74.2,"west":73.7}`, values.Get("bounds"))
}

func TestPageController_PanResetsPage(t *testing.T) {
	api := &fakeListingAPI{}
	initial := url.Values{"page": {"3"}}
	c, clock, _, _ := newTestController(t, api, initial)
	c.Mount(context.Background())
	c.Wait()

	c.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	clock.Advance(ViewportDebounceDelay)
	c.Wait()

	assert.Equal(t, 1, c.Filters().Page)
	assert.True(t, strings.Contains(api.recordedQueries()[1], "page=1&"))
}

func TestPageController_ToggleToListOnlyFetchesWithoutBounds(t *testing.T) {
	api := &fakeListingAPI{}
	c, clock, _, _ := newTestController(t, api, nil)
	ctx := context.Background()
	c.Mount(ctx)
	c.Wait()

	c.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	assert.Equal(t, 1, clock.activeTimers())

	mode := c.ToggleViewMode(ctx)
	c.Wait()

	assert.Equal(t, ViewListOnly, mode)
	assert.Equal(t, 0, clock.activeTimers())
	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	assert.NotContains(t, queries[1], "bounds=")

	// отмененный таймер больше не срабатывает
	clock.Advance(ViewportDebounceDelay)
	c.Wait()
	assert.Len(t, api.recordedQueries(), 2)

	// обратный переход без побочных эффектов
	assert.Equal(t, ViewListAndMap, c.ToggleViewMode(ctx))
	c.Wait()
	assert.Len(t, api.recordedQueries(), 2)
}

func TestPageController_FiltersKeepBoundsInMapMode(t *testing.T) {
	api := &fakeListingAPI{}
	c, clock, _, _ := newTestController(t, api, nil)
	ctx := context.Background()
	c.Mount(ctx)
	c.Wait()

	c.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	clock.Advance(ViewportDebounceDelay)
	c.Wait()
	c.SetBedrooms(ctx, intPtr(2))
	c.Wait()

	queries := api.recordedQueries()
	require.Len(t, queries, 3)
	assert.Contains(t, queries[2], "bedrooms=2")
	assert.Contains(t, queries[2], "bounds=")
}

func TestPageController_PaginationScrollsToTop(t *testing.T) {
	api := &fakeListingAPI{respond: func(ctx context.Context, query string) (*domain.ListingPage, error) {
		return &domain.ListingPage{
			Results:    []domain.PropertySummary{sampleProperty("p1", 15.5, 73.8)},
			Pagination: domain.NewPaginationMeta(1, 12, 40),
		}, nil
	}}
	c, _, effects, history := newTestController(t, api, nil)
	ctx := context.Background()
	c.Mount(ctx)
	c.Wait()

	c.GoToPage(ctx, 99)
	c.Wait()

	assert.Equal(t, 4, c.Filters().Page)
	assert.Equal(t, "page=4", history.last())
	assert.Equal(t, 1, effects.scrollTops)
}

func TestPageController_SelectionSharedBetweenPanes(t *testing.T) {
	api := &fakeListingAPI{respond: func(ctx context.Context, query string) (*domain.ListingPage, error) {
		return &domain.ListingPage{
			Results:    []domain.PropertySummary{sampleProperty("p1", 15.5, 73.8)},
			Pagination: domain.NewPaginationMeta(1, 12, 1),
		}, nil
	}}
	c, _, effects, _ := newTestController(t, api, nil)
	ctx := context.Background()
	c.Mount(ctx)
	c.Wait()

	c.SelectFromCard("p1")
	assert.Equal(t, []string{"p1"}, effects.focused)
	assert.Equal(t, "p1", c.View().SelectedID)

	c.SelectFromMarker("p1")
	assert.Equal(t, []string{"p1"}, effects.scrolledTo)

	c.ToggleViewMode(ctx)
	c.Wait()
	c.SelectFromCard("p1")
	assert.Len(t, effects.focused, 1)
}

func TestPageController_ClearFilters(t *testing.T) {
	api := &fakeListingAPI{}
	initial := url.Values{"search": {"villa"}, "featured": {"true"}}
	c, _, _, history := newTestController(t, api, initial)
	ctx := context.Background()
	c.Mount(ctx)
	c.Wait()

	c.ClearFilters(ctx)
	c.Wait()

	assert.Equal(t, domain.DefaultSearchFilters(12), c.Filters())
	assert.Equal(t, "", history.last())
	assert.Equal(t, "page=1&limit=12", api.recordedQueries()[1])
}

func TestPageController_CloseStopsTimer(t *testing.T) {
	api := &fakeListingAPI{}
	c, clock, _, _ := newTestController(t, api, nil)
	c.Mount(context.Background())
	c.Wait()

	c.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	c.Close()
	clock.Advance(ViewportDebounceDelay)

	assert.Len(t, api.recordedQueries(), 1)
}

func TestPageController_RejectsInvalidBounds(t *testing.T) {
	api := &fakeListingAPI{}
	c, clock, _, _ := newTestController(t, api, nil)
	c.Mount(context.Background())
	c.Wait()

	invalid := []domain.MapBounds{
		{North: math.NaN(), South: 0, East: 1, West: 0},
		{North: 1, South: 0, East: math.Inf(1), West: 0},
		{North: 0, South: 1, East: 1, West: 0},
	}
	for _, b := range invalid {
		c.OnBoundsChanged(b)
	}

	assert.Equal(t, 0, clock.activeTimers())
	assert.Nil(t, c.View().Bounds)
	clock.Advance(ViewportDebounceDelay)
	c.Wait()
	assert.Len(t, api.recordedQueries(), 1)
}

func TestPageController_NoFetchAfterClose(t *testing.T) {
	api := &fakeListingAPI{}
	c, _, _, _ := newTestController(t, api, nil)
	c.Mount(context.Background())
	c.Wait()

	c.Close()
	// таймер, сработавший одновременно с Close, не должен запустить запрос
	c.launch(context.Background(), nil)
	c.onBoundsSettled(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	c.Wait()

	assert.Len(t, api.recordedQueries(), 1)
}

func TestPageController_ActiveLocations(t *testing.T) {
	major := "loc-goa"
	api := &fakeListingAPI{locations: []domain.SearchLocation{
		{ID: major, Name: "Goa", Slug: "goa", Kind: domain.LocationKindMajor},
		{ID: "loc-anjuna", Name: "Anjuna", Slug: "anjuna", Kind: domain.LocationKindMinor, MajorLocationID: &major},
	}}
	c, _, _, _ := newTestController(t, api, nil)
	ctx := context.Background()

	none, err := c.ActiveLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Equal(t, 0, api.locCalls)

	c.SetLocations(ctx, []string{"anjuna", "loc-goa", "mars"})
	c.Wait()

	active, err := c.ActiveLocations(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "Anjuna", active[0].Name)
	assert.Equal(t, "Goa", active[1].Name)
	assert.Equal(t, domain.SearchLocation{ID: "mars", Name: "mars", Slug: "mars"}, active[2])
}
