package rest

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/port/usecases_port"
	"net/http"
)

type LocationHandler struct {
	getSearchLocationsUC usecases_port.GetSearchLocationsUseCase
}

func NewLocationHandler(getSearchLocationsUC usecases_port.GetSearchLocationsUseCase) *LocationHandler {
	return &LocationHandler{getSearchLocationsUC: getSearchLocationsUC}
}

// GetSearchLocations обрабатывает GET /api/search/locations
func (h *LocationHandler) GetSearchLocations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	locations, err := h.getSearchLocationsUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	response := LocationsResponse{
		Success: true,
		Data:    make([]SearchLocationResponse, len(locations)),
	}
	for i, l := range locations {
		response.Data[i] = SearchLocationResponse{
			ID:              l.ID,
			Name:            l.Name,
			Slug:            l.Slug,
			Type:            string(l.Kind),
			MajorLocationID: l.MajorLocationID,
			PropertyCount:   l.PropertyCount,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}
