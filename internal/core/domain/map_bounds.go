package domain

import (
	"fmt"
	"math"
)

// MapBounds - видимый прямоугольник карты в градусах
type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Validate проверяет диапазоны координат
func (b MapBounds) Validate() error {
	for _, v := range []float64{b.North, b.South, b.East, b.West} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: coordinates must be finite", ErrInvalidBounds)
		}
	}
	if b.North < -90 || b.North > 90 || b.South < -90 || b.South > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidBounds)
	}
	if b.East < -180 || b.East > 180 || b.West < -180 || b.West > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidBounds)
	}
	if b.South > b.North {
		return fmt.Errorf("%w: south is greater than north", ErrInvalidBounds)
	}
	return nil
}

// CrossesAntimeridian - прямоугольник переходит через 180-й меридиан
func (b MapBounds) CrossesAntimeridian() bool {
	return b.West > b.East
}

// Contains проверяет, попадает ли точка в прямоугольник
func (b MapBounds) Contains(lat, lng float64) bool {
	if lat < b.South || lat > b.North {
		return false
	}
	if b.CrossesAntimeridian() {
		return lng >= b.West || lng <= b.East
	}
	return lng >= b.West && lng <= b.East
}

// Span - наибольший размер прямоугольника в градусах
func (b MapBounds) Span() float64 {
	lngSpan := b.East - b.West
	if b.CrossesAntimeridian() {
		lngSpan += 360
	}
	return math.Max(b.North-b.South, lngSpan)
}
