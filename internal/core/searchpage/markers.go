package searchpage

import (
	"avacasa/internal/core/domain"
	"strconv"

	"github.com/mmcloughlin/geohash"
)

// MarkerCluster - маркер карты; объекты из одной geohash-ячейки объединяются
type MarkerCluster struct {
	Geohash     string
	Latitude    float64
	Longitude   float64
	PropertyIDs []string
	Selected    bool
	// Label - цена для одиночного маркера, число объектов для кластера
	Label string
}

func (c MarkerCluster) Count() int {
	return len(c.PropertyIDs)
}

// geohashPrecision подбирает длину geohash по размеру видимой области
func geohashPrecision(bounds *domain.MapBounds) uint {
	if bounds == nil {
		return 5
	}
	span := bounds.Span()
	switch {
	case span >= 45:
		return 2
	case span >= 5:
		return 3
	case span >= 1:
		return 4
	case span >= 0.2:
		return 5
	case span >= 0.05:
		return 6
	default:
		return 7
	}
}

// BuildMarkers группирует объекты с координатами; порядок - по первому появлению ячейки
func BuildMarkers(results []domain.PropertySummary, bounds *domain.MapBounds, selectedID string) []MarkerCluster {
	precision := geohashPrecision(bounds)

	index := make(map[string]int)
	var clusters []MarkerCluster
	var sumLat, sumLng []float64
	var firstPrice []float64

	for _, p := range results {
		if !p.HasCoordinates() {
			continue
		}
		lat, lng := *p.Latitude, *p.Longitude
		cell := geohash.EncodeWithPrecision(lat, lng, precision)

		i, ok := index[cell]
		if !ok {
			i = len(clusters)
			index[cell] = i
			clusters = append(clusters, MarkerCluster{Geohash: cell})
			sumLat = append(sumLat, 0)
			sumLng = append(sumLng, 0)
			firstPrice = append(firstPrice, p.Price)
		}
		clusters[i].PropertyIDs = append(clusters[i].PropertyIDs, p.ID)
		if p.ID == selectedID && selectedID != "" {
			clusters[i].Selected = true
		}
		sumLat[i] += lat
		sumLng[i] += lng
	}

	for i := range clusters {
		n := float64(len(clusters[i].PropertyIDs))
		clusters[i].Latitude = sumLat[i] / n
		clusters[i].Longitude = sumLng[i] / n
		if len(clusters[i].PropertyIDs) == 1 {
			clusters[i].Label = FormatPriceShort(firstPrice[i])
		} else {
			clusters[i].Label = strconv.Itoa(len(clusters[i].PropertyIDs))
		}
	}
	return clusters
}
