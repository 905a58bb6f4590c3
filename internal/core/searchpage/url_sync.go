package searchpage

import (
	"avacasa/internal/core/domain"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Ключи пользовательского query string
const (
	urlKeyType         = "type"
	urlKeyPropertyType = "propertyType"
	urlKeySearch       = "search"
	urlKeyFeatured     = "featured"
	urlKeyLocation     = "location"
	urlKeyBedrooms     = "bedrooms"
	urlKeyMinPrice     = "minPrice"
	urlKeyMaxPrice     = "maxPrice"
	urlKeyPage         = "page"
)

// HydrateFilters строит SearchFilters из query string страницы.
// Некорректные значения молча отбрасываются.
func HydrateFilters(values url.Values, pageSize int) domain.SearchFilters {
	filters := domain.DefaultSearchFilters(pageSize)

	filters.Query = strings.TrimSpace(values.Get(urlKeySearch))

	rawType := values.Get(urlKeyType)
	if rawType == "" {
		rawType = values.Get(urlKeyPropertyType)
	}
	if pt, ok := domain.ParsePropertyType(rawType); ok {
		filters.PropertyType = &pt
	}

	if featured, err := strconv.ParseBool(values.Get(urlKeyFeatured)); err == nil {
		filters.FeaturedOnly = featured
	}

	if raw := values.Get(urlKeyLocation); raw != "" {
		filters.LocationIDs = splitLocationIDs([]string{raw})
	}

	if bedrooms, err := strconv.Atoi(values.Get(urlKeyBedrooms)); err == nil && bedrooms >= 0 {
		filters.Bedrooms = &bedrooms
	}

	filters.MinPrice = parsePrice(values.Get(urlKeyMinPrice))
	filters.MaxPrice = parsePrice(values.Get(urlKeyMaxPrice))

	if page, err := strconv.Atoi(values.Get(urlKeyPage)); err == nil && page >= 1 {
		filters.Page = page
	}

	return filters
}

// SerializeFilters - обратное преобразование, только непустые ключи в фиксированном порядке
func SerializeFilters(filters domain.SearchFilters) (url.Values, string) {
	params := serializeFilters(filters)
	return params.values(), params.encode()
}

func serializeFilters(filters domain.SearchFilters) orderedParams {
	var params orderedParams

	if filters.Query != "" {
		params.add(urlKeySearch, filters.Query)
	}
	if filters.PropertyType != nil {
		params.add(urlKeyType, filters.PropertyType.Token())
	}
	if filters.FeaturedOnly {
		params.add(urlKeyFeatured, "true")
	}
	if len(filters.LocationIDs) > 0 {
		params.add(urlKeyLocation, strings.Join(filters.LocationIDs, ","))
	}
	if filters.Bedrooms != nil {
		params.add(urlKeyBedrooms, strconv.Itoa(*filters.Bedrooms))
	}
	if filters.MinPrice != nil {
		params.add(urlKeyMinPrice, formatNumber(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		params.add(urlKeyMaxPrice, formatNumber(*filters.MaxPrice))
	}
	if filters.Page > 1 {
		params.add(urlKeyPage, strconv.Itoa(filters.Page))
	}

	return params
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return validPrice(&value)
}

func validPrice(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) || *value < 0 {
		return nil
	}
	v := *value
	return &v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
