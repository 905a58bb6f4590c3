package domain

import "time"

// PropertyStatus - статус публикации объекта
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "DRAFT"
	PropertyStatusPublished PropertyStatus = "PUBLISHED"
	PropertyStatusArchived  PropertyStatus = "ARCHIVED"
)

func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusDraft, PropertyStatusPublished, PropertyStatusArchived:
		return true
	}
	return false
}

// LocationRef - ссылка на локацию внутри карточки объекта
type LocationRef struct {
	ID   string
	Name string
	Slug string
}

// PropertySummary - строка выдачи. После получения не изменяется.
type PropertySummary struct {
	ID           string
	Title        string
	Slug         string
	Price        float64
	Bedrooms     *int
	Bathrooms    *int
	Area         *float64
	Images       []string
	Location     *LocationRef
	PropertyType PropertyType
	Featured     bool
	Latitude     *float64
	Longitude    *float64
}

// HasCoordinates - можно ли показать объект на карте
func (p PropertySummary) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// PropertyDetails - полная карточка для GET /api/properties/{slug}
type PropertyDetails struct {
	PropertySummary
	Description string
	Address     string
	Amenities   []string
	Status      PropertyStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaginationMeta - метаданные страницы, целиком приходят от сервера
type PaginationMeta struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// NewPaginationMeta считает число страниц
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PaginationMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ListingPage - результат одного успешного запроса выдачи
type ListingPage struct {
	Results    []PropertySummary
	Pagination PaginationMeta
}

// FindPropertiesFilters - серверные фильтры (после разбора query-параметров)
type FindPropertiesFilters struct {
	Search        string
	PropertyType  *PropertyType
	FeaturedOnly  bool
	LocationKeys  []string // id или slug
	MinBedrooms   *int
	MinPrice      *float64
	MaxPrice      *float64
	Bounds        *MapBounds
	Status        *PropertyStatus
	PublishedOnly bool

	Page  int
	Limit int
}

// FindPropertiesResult - страница выдачи на стороне сервиса
type FindPropertiesResult struct {
	Properties []PropertySummary
	TotalCount int
	Page       int
	Limit      int
}
