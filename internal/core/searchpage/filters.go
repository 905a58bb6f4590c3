package searchpage

import (
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"strings"
	"sync"
)

// Action - любое действие пользователя, меняющее фильтры
type Action interface {
	isAction()
}

type SetQuery struct{ Query string }
type SetPropertyType struct{ Type *domain.PropertyType }
type SetLocations struct{ IDs []string }
type SetBedrooms struct{ Bedrooms *int }
type SetPriceRange struct{ Min, Max *float64 }
type SetFeatured struct{ Featured bool }
type GoToPage struct{ Page int }
type ClearFilters struct{}

func (SetQuery) isAction()        {}
func (SetPropertyType) isAction() {}
func (SetLocations) isAction()    {}
func (SetBedrooms) isAction()     {}
func (SetPriceRange) isAction()   {}
func (SetFeatured) isAction()     {}
func (GoToPage) isAction()        {}
func (ClearFilters) isAction()    {}

// ReduceFilters возвращает новое состояние, исходное не изменяется.
// Любое действие кроме GoToPage сбрасывает страницу на первую.
// minPrice > maxPrice не отклоняется.
func ReduceFilters(state domain.SearchFilters, action Action) domain.SearchFilters {
	next := state.Clone()

	switch a := action.(type) {
	case GoToPage:
		if a.Page < 1 {
			a.Page = 1
		}
		next.Page = a.Page
		return next
	case ClearFilters:
		return domain.DefaultSearchFilters(state.PageSize)
	case SetQuery:
		next.Query = strings.TrimSpace(a.Query)
	case SetPropertyType:
		next.PropertyType = nil
		if a.Type != nil && a.Type.IsValid() {
			v := *a.Type
			next.PropertyType = &v
		}
	case SetLocations:
		next.LocationIDs = splitLocationIDs(a.IDs)
	case SetBedrooms:
		next.Bedrooms = nil
		if a.Bedrooms != nil && *a.Bedrooms >= 0 {
			v := *a.Bedrooms
			next.Bedrooms = &v
		}
	case SetPriceRange:
		next.MinPrice = validPrice(a.Min)
		next.MaxPrice = validPrice(a.Max)
	case SetFeatured:
		next.FeaturedOnly = a.Featured
	default:
		return next
	}

	next.Page = 1
	return next
}

// FilterStore - единственный владелец SearchFilters страницы.
// После каждой мутации состояние записывается в адресную строку.
type FilterStore struct {
	// dispatchMu держится от редьюсера до записи в адресную строку,
	// чтобы URL всегда соответствовал последнему состоянию
	dispatchMu sync.Mutex
	mu         sync.Mutex
	state      domain.SearchFilters
	history    port.HistoryReplacer
}

func NewFilterStore(initial domain.SearchFilters, history port.HistoryReplacer) *FilterStore {
	if initial.PageSize < 1 {
		initial.PageSize = domain.DefaultPageSize
	}
	if initial.Page < 1 {
		initial.Page = 1
	}
	return &FilterStore{state: initial.Clone(), history: history}
}

// State возвращает копию текущего состояния
func (s *FilterStore) State() domain.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch применяет действие и синхронизирует URL
func (s *FilterStore) Dispatch(action Action) domain.SearchFilters {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = ReduceFilters(s.state, action)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	if s.history != nil {
		params := serializeFilters(snapshot)
		s.history.ReplaceQuery(params.values(), params.encode())
	}
	return snapshot
}

// splitLocationIDs - каждое значение может само быть списком через запятую, как в URL
func splitLocationIDs(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return domain.UniqueOrdered(out)
}
