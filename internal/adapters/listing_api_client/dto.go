package listing_api_client

type LocationRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PropertySummaryResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Slug         string               `json:"slug"`
	Price        float64              `json:"price"`
	Bedrooms     *int                 `json:"bedrooms"`
	Bathrooms    *int                 `json:"bathrooms"`
	Area         *float64             `json:"area"`
	Images       []string             `json:"images"`
	Location     *LocationRefResponse `json:"location"`
	PropertyType string               `json:"propertyType"`
	Featured     bool                 `json:"featured"`
	Latitude     *float64             `json:"latitude"`
	Longitude    *float64             `json:"longitude"`
}

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type PropertiesResponse struct {
	Success    bool                      `json:"success"`
	Error      string                    `json:"error,omitempty"`
	Data       []PropertySummaryResponse `json:"data"`
	Pagination *PaginationResponse       `json:"pagination,omitempty"`
}

type SearchLocationResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Type            string  `json:"type"`
	MajorLocationID *string `json:"majorLocationId"`
	PropertyCount   int     `json:"propertyCount"`
}

type LocationsResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error,omitempty"`
	Data    []SearchLocationResponse `json:"data"`
}
