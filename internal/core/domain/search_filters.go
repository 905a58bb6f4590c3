package domain

import "slices"

// DefaultPageSize - размер страницы выдачи по умолчанию
const DefaultPageSize = 12

// SearchFilters - текущее намерение пользователя на странице поиска.
// Nil-указатель означает "фильтр не задан".
type SearchFilters struct {
	Query        string
	PropertyType *PropertyType
	LocationIDs  []string
	Bedrooms     *int
	MinPrice     *float64
	MaxPrice     *float64
	Page         int
	PageSize     int
	FeaturedOnly bool
}

// DefaultSearchFilters - состояние после "очистить фильтры"
func DefaultSearchFilters(pageSize int) SearchFilters {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return SearchFilters{Page: 1, PageSize: pageSize}
}

// Clone возвращает глубокую копию, чтобы состояние нельзя было изменить через указатели
func (f SearchFilters) Clone() SearchFilters {
	out := f
	if f.PropertyType != nil {
		v := *f.PropertyType
		out.PropertyType = &v
	}
	if f.Bedrooms != nil {
		v := *f.Bedrooms
		out.Bedrooms = &v
	}
	if f.MinPrice != nil {
		v := *f.MinPrice
		out.MinPrice = &v
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		out.MaxPrice = &v
	}
	if f.LocationIDs != nil {
		out.LocationIDs = slices.Clone(f.LocationIDs)
	}
	return out
}

// HasActiveFilters - задан ли хоть один фильтр кроме пагинации
func (f SearchFilters) HasActiveFilters() bool {
	return f.Query != "" || f.PropertyType != nil || len(f.LocationIDs) > 0 ||
		f.Bedrooms != nil || f.MinPrice != nil || f.MaxPrice != nil || f.FeaturedOnly
}

// UniqueOrdered убирает пустые значения и дубликаты, сохраняя порядок
func UniqueOrdered(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
