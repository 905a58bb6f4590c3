package rest

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"avacasa/internal/core/port/usecases_port"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PropertyHandler struct {
	findPropertiesUC    usecases_port.FindPropertiesUseCase
	getPropertyBySlugUC usecases_port.GetPropertyBySlugUseCase
}

func NewPropertyHandler(findPropertiesUC usecases_port.FindPropertiesUseCase,
	getPropertyBySlugUC usecases_port.GetPropertyBySlugUseCase) *PropertyHandler {
	return &PropertyHandler{
		findPropertiesUC:    findPropertiesUC,
		getPropertyBySlugUC: getPropertyBySlugUC,
	}
}

// ListPublic обрабатывает GET /api/properties - только опубликованные объекты
func (h *PropertyHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ListAdmin обрабатывает GET /api/admin/properties - любые статусы, опционально status
func (h *PropertyHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *PropertyHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters, err := parseFindFilters(query)
	if err != nil {
		logger.Warn("Invalid bounds parameter", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid bounds parameter")
		return
	}

	filters.PublishedOnly = publishedOnly
	if !publishedOnly {
		status := domain.PropertyStatus(parseString(query, "status"))
		if status.IsValid() {
			filters.Status = &status
		}
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":        "ListProperties",
		"published_only": publishedOnly,
		"page":           filters.Page,
		"limit":          filters.Limit,
	})
	handlerLogger.Debug("Processing request to find properties", nil)

	result, err := h.findPropertiesUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	meta := domain.NewPaginationMeta(result.Page, result.Limit, result.TotalCount)
	response := PropertiesResponse{
		Success: true,
		Data:    make([]PropertySummaryResponse, len(result.Properties)),
		Pagination: PaginationResponse{
			Page:  meta.Page,
			Limit: meta.Limit,
			Total: meta.Total,
			Pages: meta.Pages,
		},
	}
	for i, p := range result.Properties {
		response.Data[i] = toSummaryResponse(p)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetBySlug обрабатывает GET /api/properties/{slug}
func (h *PropertyHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "GetPropertyBySlug",
		"slug":    slug,
	})

	details, err := h.getPropertyBySlugUC.Execute(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}

	amenities := details.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	RespondWithJSON(w, http.StatusOK, PropertyDetailsEnvelope{
		Success: true,
		Data: PropertyDetailsResponse{
			PropertySummaryResponse: toSummaryResponse(details.PropertySummary),
			Description:             details.Description,
			Address:                 details.Address,
			Amenities:               amenities,
			Status:                  string(details.Status),
			CreatedAt:               details.CreatedAt,
			UpdatedAt:               details.UpdatedAt,
		},
	})
}

func toSummaryResponse(p domain.PropertySummary) PropertySummaryResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	resp := PropertySummaryResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Images:       images,
		PropertyType: string(p.PropertyType),
		Featured:     p.Featured,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
	}
	if p.Location != nil {
		resp.Location = &LocationRefResponse{ID: p.Location.ID, Name: p.Location.Name, Slug: p.Location.Slug}
	}
	return resp
}
