package postgres

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) (*LocationRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &LocationRepository{pool: pool}, nil
}

// ListSearchLocations возвращает плоский список: сначала регионы, затем населенные пункты.
// Для региона считаются и объекты его населенных пунктов.
func (r *LocationRepository) ListSearchLocations(ctx context.Context) ([]domain.SearchLocation, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "LocationRepository",
		"method":    "ListSearchLocations",
	})

	query := `
		SELECT l.id, l.name, l.slug, l.type, l.major_location_id,
			(SELECT COUNT(*)
			 FROM properties p
			 LEFT JOIN locations pl ON pl.id = p.location_id
			 WHERE p.status = $1 AND (p.location_id = l.id OR pl.major_location_id = l.id)) AS property_count
		FROM locations l
		ORDER BY l.type ASC, l.name ASC`

	rows, err := r.pool.Query(ctx, query, string(domain.PropertyStatusPublished))
	if err != nil {
		repoLogger.Error("Failed to query search locations", err, nil)
		return nil, fmt.Errorf("failed to query search locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.SearchLocation, 0)
	for rows.Next() {
		var loc domain.SearchLocation
		var kind string
		var count int64
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Slug, &kind, &loc.MajorLocationID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		loc.Kind = domain.LocationKind(kind)
		loc.PropertyCount = int(count)
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}
