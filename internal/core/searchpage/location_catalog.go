package searchpage

import (
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// LocationCatalog загружает плоский список локаций один раз и фильтрует его на клиенте
type LocationCatalog struct {
	api port.ListingAPIPort

	mu        sync.Mutex
	loaded    bool
	locations []domain.SearchLocation
}

func NewLocationCatalog(api port.ListingAPIPort) *LocationCatalog {
	return &LocationCatalog{api: api}
}

// Load запрашивает список, если он еще не загружен. После ошибки следующий вызов повторит запрос.
func (c *LocationCatalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}
	locations, err := c.api.FetchLocations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load search locations: %w", err)
	}
	c.locations = locations
	c.loaded = true
	return nil
}

// Filter - регистронезависимый поиск подстроки по названию (Unicode case folding)
func (c *LocationCatalog) Filter(term string) []domain.SearchLocation {
	c.mu.Lock()
	all := c.locations
	c.mu.Unlock()

	return FilterLocations(all, term)
}

// Lookup ищет локацию по id или slug
func (c *LocationCatalog) Lookup(key string) (domain.SearchLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.locations {
		if l.ID == key || l.Slug == key {
			return l, true
		}
	}
	return domain.SearchLocation{}, false
}

func FilterLocations(all []domain.SearchLocation, term string) []domain.SearchLocation {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]domain.SearchLocation(nil), all...)
	}

	// Caser хранит состояние, поэтому создается на каждый вызов
	fold := cases.Fold()
	needle := fold.String(term)

	var out []domain.SearchLocation
	for _, l := range all {
		if strings.Contains(fold.String(l.Name), needle) {
			out = append(out, l)
		}
	}
	return out
}
