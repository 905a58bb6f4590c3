package rest

import (
	"avacasa/internal/core/domain"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultLimit = domain.DefaultPageSize
	maxLimit     = 100
	// maxPage держит (page-1)*limit далеко от переполнения
	maxPage = 100000
)

// WriteJSONError отправляет {"success": false, "error": ...} с заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func parseString(query url.Values, key string) string {
	return strings.TrimSpace(query.Get(key))
}

// parseNonNegativeInt - nil для пустых и некорректных значений
func parseNonNegativeInt(query url.Values, key string) *int {
	v, err := strconv.Atoi(query.Get(key))
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseNonNegativeFloat(query url.Values, key string) *float64 {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseStringSlice(query url.Values, key string) []string {
	var out []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return domain.UniqueOrdered(out)
}

func parseBool(query url.Values, key string) bool {
	v, err := strconv.ParseBool(query.Get(key))
	return err == nil && v
}

// parsePagination: page по умолчанию 1 и не больше maxPage, limit по умолчанию 12, не больше 100
func parsePagination(query url.Values) (int, int) {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// boundsParam - все четыре стороны обязательны
type boundsParam struct {
	North *float64 `json:"north"`
	South *float64 `json:"south"`
	East  *float64 `json:"east"`
	West  *float64 `json:"west"`
}

// parseBounds разбирает JSON-параметр bounds. Пустой параметр - не ошибка.
func parseBounds(query url.Values) (*domain.MapBounds, error) {
	raw := query.Get("bounds")
	if raw == "" {
		return nil, nil
	}

	var p boundsParam
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBounds, err)
	}
	if p.North == nil || p.South == nil || p.East == nil || p.West == nil {
		return nil, fmt.Errorf("%w: north, south, east and west are required", domain.ErrInvalidBounds)
	}

	bounds := domain.MapBounds{North: *p.North, South: *p.South, East: *p.East, West: *p.West}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &bounds, nil
}

// parseFindFilters собирает серверные фильтры. Некорректные значения игнорируются,
// кроме bounds - для него возвращается ошибка.
func parseFindFilters(query url.Values) (domain.FindPropertiesFilters, error) {
	page, limit := parsePagination(query)

	filters := domain.FindPropertiesFilters{
		Search:       parseString(query, "search"),
		FeaturedOnly: parseBool(query, "featured"),
		LocationKeys: parseStringSlice(query, "location"),
		MinBedrooms:  parseNonNegativeInt(query, "bedrooms"),
		MinPrice:     parseNonNegativeFloat(query, "minPrice"),
		MaxPrice:     parseNonNegativeFloat(query, "maxPrice"),
		Page:         page,
		Limit:        limit,
	}

	rawType := query.Get("propertyType")
	if rawType == "" {
		rawType = query.Get("type")
	}
	if pt, ok := domain.ParsePropertyType(rawType); ok {
		filters.PropertyType = &pt
	}

	bounds, err := parseBounds(query)
	if err != nil {
		return filters, err
	}
	filters.Bounds = bounds

	return filters, nil
}
