package searchpage

import (
	"avacasa/internal/core/domain"
	"fmt"
)

const (
	emptyStateHint        = "Try adjusting your search criteria or browse all available properties."
	emptyStateActionLabel = "View All Properties"
)

// Card - карточка объекта в списке
type Card struct {
	ID           string
	Title        string
	Slug         string
	PriceLabel   string
	TypeLabel    string
	LocationName string
	Bedrooms     *int
	Bathrooms    *int
	Area         *float64
	CoverImage   string
	ImageCount   int
	Featured     bool
	Selected     bool
	OnMap        bool
}

// EmptyState - сообщение при пустой выдаче. Ошибка запроса и ноль результатов не различаются.
type EmptyState struct {
	Title       string
	Message     string
	Hint        string
	ActionLabel string
}

// ResultView - полностью вычисленное представление страницы
type ResultView struct {
	Mode       ViewMode
	Filters    domain.SearchFilters
	Bounds     *domain.MapBounds
	Loading    bool
	Skeletons  int
	Cards      []Card
	Markers    []MarkerCluster
	Empty      *EmptyState
	Pagination *PaginationControl
	SelectedID string
	// FiltersActive - есть ли что сбрасывать кнопкой "View All Properties"
	FiltersActive bool
}

// RenderInput - все, от чего зависит представление
type RenderInput struct {
	Mode       ViewMode
	Filters    domain.SearchFilters
	Bounds     *domain.MapBounds
	Fetch      FetchState
	SelectedID string
}

// Render - чистая функция от состояния страницы
func Render(in RenderInput) ResultView {
	view := ResultView{
		Mode:    in.Mode,
		Filters: in.Filters,
		Bounds:  in.Bounds,
		Loading: in.Fetch.Loading,

		FiltersActive: in.Filters.HasActiveFilters(),
	}

	if in.Fetch.Loading {
		view.Skeletons = in.Filters.PageSize
		if view.Skeletons < 1 {
			view.Skeletons = domain.DefaultPageSize
		}
		return view
	}

	selected := ""
	for _, p := range in.Fetch.Results {
		if p.ID == in.SelectedID {
			selected = p.ID
			break
		}
	}
	view.SelectedID = selected

	if len(in.Fetch.Results) == 0 {
		view.Empty = buildEmptyState(in.Filters)
		return view
	}

	view.Cards = make([]Card, 0, len(in.Fetch.Results))
	for _, p := range in.Fetch.Results {
		view.Cards = append(view.Cards, buildCard(p, selected))
	}
	view.Pagination = BuildPaginationControl(in.Fetch.Pagination)

	if in.Mode.MapVisible() {
		view.Markers = BuildMarkers(in.Fetch.Results, in.Bounds, selected)
	}

	return view
}

func buildCard(p domain.PropertySummary, selectedID string) Card {
	card := Card{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		PriceLabel: FormatPriceINR(p.Price),
		TypeLabel:  p.PropertyType.Label(),
		Bedrooms:   p.Bedrooms,
		Bathrooms:  p.Bathrooms,
		Area:       p.Area,
		ImageCount: len(p.Images),
		Featured:   p.Featured,
		Selected:   p.ID == selectedID && selectedID != "",
		OnMap:      p.HasCoordinates(),
	}
	if len(p.Images) > 0 {
		card.CoverImage = p.Images[0]
	}
	if p.Location != nil {
		card.LocationName = p.Location.Name
	}
	return card
}

func buildEmptyState(filters domain.SearchFilters) *EmptyState {
	state := &EmptyState{
		Title:       "No properties found",
		Message:     "We couldn't find any properties matching your filters.",
		Hint:        emptyStateHint,
		ActionLabel: emptyStateActionLabel,
	}
	if filters.Query != "" {
		state.Message = fmt.Sprintf("We couldn't find any properties matching %q.", filters.Query)
	}
	return state
}
