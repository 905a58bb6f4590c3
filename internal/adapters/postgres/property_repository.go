package postgres

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const summaryColumns = `p.id, p.title, p.slug, p.price, p.bedrooms, p.bathrooms, p.area, p.images,
	p.property_type, p.featured, p.latitude, p.longitude, l.id, l.name, l.slug`

// PropertyRepository реализует PropertyStoragePort для PostgreSQL
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

// FindWithFilters ищет объекты по фильтрам с пагинацией. Сначала избранные, затем новые.
func (r *PropertyRepository) FindWithFilters(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindWithFilters",
		"page":      filters.Page,
		"limit":     filters.Limit,
	})

	joinClause, whereClause, args := applyFilters(filters)

	// COUNT и страница читаются в одной транзакции
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties p %s %s", joinClause, whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count properties with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count properties with filters: %w", err)
	}

	result := &domain.FindPropertiesResult{
		Properties: []domain.PropertySummary{},
		TotalCount: int(totalCount),
		Page:       filters.Page,
		Limit:      filters.Limit,
	}

	if totalCount == 0 {
		return result, nil
	}

	var dataQuery strings.Builder
	dataQuery.WriteString("SELECT ")
	dataQuery.WriteString(summaryColumns)
	dataQuery.WriteString(" FROM properties p ")
	dataQuery.WriteString(joinClause)
	dataQuery.WriteString(" ")
	dataQuery.WriteString(whereClause)
	dataQuery.WriteString(" ORDER BY p.featured DESC, p.created_at DESC, p.id ASC")

	offset := pageOffset(filters.Page, filters.Limit)
	limitOffsetArgs := append(args, filters.Limit, offset)
	limitOffsetQuery := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", dataQuery.String(), len(args)+1, len(args)+2)

	rows, err := tx.Query(ctx, limitOffsetQuery, limitOffsetArgs...)
	if err != nil {
		repoLogger.Error("Failed to find properties with filters", err, port.Fields{"query": limitOffsetQuery})
		return nil, fmt.Errorf("failed to find properties with filters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		result.Properties = append(result.Properties, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Properties page loaded", port.Fields{
		"total_count": totalCount,
		"count":       len(result.Properties),
	})

	return result, nil
}

// GetPublishedBySlug возвращает опубликованный объект или domain.ErrPropertyNotFound
func (r *PropertyRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "GetPublishedBySlug",
		"slug":      slug,
	})

	query := "SELECT " + summaryColumns + `,
			p.description, p.address, p.amenities, p.status, p.created_at, p.updated_at
		FROM properties p ` + propertyJoinClause + `
		WHERE p.slug = $1 AND p.status = $2`

	var details domain.PropertyDetails
	var status string
	var locID, locName, locSlug *string
	dest := append(summaryDest(&details.PropertySummary), &locID, &locName, &locSlug,
		&details.Description, &details.Address, &details.Amenities, &status, &details.CreatedAt, &details.UpdatedAt)

	err := r.pool.QueryRow(ctx, query, slug, string(domain.PropertyStatusPublished)).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to get property by slug", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get property by slug: %w", err)
	}

	details.Location = locationRef(locID, locName, locSlug)
	details.Status = domain.PropertyStatus(status)
	return &details, nil
}

// summaryDest - цели Scan для колонок summaryColumns без колонок локации
func summaryDest(s *domain.PropertySummary) []interface{} {
	return []interface{}{
		&s.ID, &s.Title, &s.Slug, &s.Price, &s.Bedrooms, &s.Bathrooms, &s.Area, &s.Images,
		&s.PropertyType, &s.Featured, &s.Latitude, &s.Longitude,
	}
}

func scanSummary(rows pgx.Rows) (domain.PropertySummary, error) {
	var s domain.PropertySummary
	var locID, locName, locSlug *string

	dest := append(summaryDest(&s), &locID, &locName, &locSlug)
	if err := rows.Scan(dest...); err != nil {
		return s, err
	}
	s.Location = locationRef(locID, locName, locSlug)
	if s.Images == nil {
		s.Images = []string{}
	}
	return s, nil
}

func locationRef(id, name, slug *string) *domain.LocationRef {
	if id == nil {
		return nil
	}
	ref := &domain.LocationRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if slug != nil {
		ref.Slug = *slug
	}
	return ref
}
