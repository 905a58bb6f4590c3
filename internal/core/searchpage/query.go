package searchpage

import (
	"avacasa/internal/core/domain"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// ListingQuery - параметры GET /api/properties в порядке отправки
type ListingQuery struct {
	params orderedParams
}

// BuildListingQuery включает только заданные поля; bounds уходит одним JSON-параметром
func BuildListingQuery(filters domain.SearchFilters, bounds *domain.MapBounds) ListingQuery {
	var params orderedParams

	if filters.Query != "" {
		params.add("search", filters.Query)
	}
	if filters.PropertyType != nil {
		params.add("propertyType", string(*filters.PropertyType))
	}
	if filters.FeaturedOnly {
		params.add("featured", "true")
	}
	if len(filters.LocationIDs) > 0 {
		params.add("location", strings.Join(filters.LocationIDs, ","))
	}
	if filters.Bedrooms != nil {
		params.add("bedrooms", strconv.Itoa(*filters.Bedrooms))
	}
	if filters.MinPrice != nil {
		params.add("minPrice", formatNumber(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		params.add("maxPrice", formatNumber(*filters.MaxPrice))
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	params.add("page", strconv.Itoa(page))

	if filters.PageSize > 0 {
		params.add("limit", strconv.Itoa(filters.PageSize))
	}

	if bounds != nil && bounds.Validate() == nil {
		if raw, err := json.Marshal(bounds); err == nil {
			params.add("bounds", string(raw))
		}
	}

	return ListingQuery{params: params}
}

// Encode возвращает query string без сортировки ключей
func (q ListingQuery) Encode() string {
	return q.params.encode()
}

func (q ListingQuery) Get(key string) (string, bool) {
	return q.params.get(key)
}

func (q ListingQuery) Values() url.Values {
	return q.params.values()
}
