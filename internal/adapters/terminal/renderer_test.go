package terminal

import (
	"avacasa/internal/core/domain"
	"avacasa/internal/core/searchpage"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_Cards(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "")
	r.ReplaceQuery(nil, "search=goa&page=2")

	beds := 3
	view := searchpage.ResultView{
		Mode: searchpage.ViewListAndMap,
		Cards: []searchpage.Card{
			{ID: "p1", Title: "Sea View Villa", TypeLabel: "Villa", PriceLabel: "₹1,20,00,000", Bedrooms: &beds, LocationName: "North Goa", Featured: true, Selected: true},
			{ID: "p2", Title: "Studio", TypeLabel: "Studio", PriceLabel: "₹40,00,000"},
		},
		Markers: []searchpage.MarkerCluster{{Geohash: "tdr1", PropertyIDs: []string{"p1", "p2"}, Selected: true, Label: "2"}},
		Pagination: searchpage.BuildPaginationControl(&domain.PaginationMeta{
			Page: 2, Limit: 12, Total: 60, Pages: 5,
		}),
	}
	view.FiltersActive = true
	r.Render(view)

	out := buf.String()
	assert.Contains(t, out, "/properties?search=goa&page=2 [list+map]")
	assert.Contains(t, out, "Sea View Villa")
	assert.Contains(t, out, ">★")
	assert.Contains(t, out, "[tdr1:2]")
	assert.Contains(t, out, "filters active")
	assert.Contains(t, out, "< Prev 1 [2] 3 … 5 Next >")
	assert.Contains(t, out, "(60 results)")
	assert.Equal(t, "/properties?search=goa&page=2", r.Location())
}

func TestRenderer_LoadingAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "/search")

	r.Render(searchpage.ResultView{Loading: true, Skeletons: 2})
	assert.Equal(t, 2, strings.Count(buf.String(), "░░░░░░░░░░░░░░░░░░░░\n"))

	buf.Reset()
	r.Render(searchpage.ResultView{Mode: searchpage.ViewListOnly, Empty: &searchpage.EmptyState{
		Title: "No properties found", Message: `matching "Goa villa".`, Hint: "Try again", ActionLabel: "View All Properties",
	}})
	out := buf.String()
	assert.Contains(t, out, "== /search [list]")
	assert.Contains(t, out, "[View All Properties]")
}

func TestRenderer_Effects(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, "")

	r.FocusMarker("p1")
	r.ScrollToCard("p2")
	r.ScrollToTop()

	out := buf.String()
	assert.Contains(t, out, "map focused on p1")
	assert.Contains(t, out, "list scrolled to p2")
	assert.Contains(t, out, "scrolled to top")
	assert.Equal(t, "/properties", r.Location())
}
