package postgres

import (
	"avacasa/internal/core/domain"
	"fmt"
	"math"
	"strings"
)

// Локации объекта и его региона нужны и для фильтра, и для карточки
const propertyJoinClause = "LEFT JOIN locations l ON l.id = p.location_id LEFT JOIN locations ml ON ml.id = l.major_location_id"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type queryBuilder struct {
	joinClause strings.Builder
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	qb := &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
	qb.joinClause.WriteString(propertyJoinClause)
	return qb
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addSharedArgCondition - условие, где один аргумент используется несколько раз:
// все плейсхолдеры %[1]d заменяются номером аргумента
func (qb *queryBuilder) addSharedArgCondition(condition string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addRawCondition - условие без аргументов
func (qb *queryBuilder) addRawCondition(condition string) {
	qb.conditions = append(qb.conditions, condition)
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddBoundsFilter ограничивает координаты прямоугольником, в том числе через 180-й меридиан
func (qb *queryBuilder) AddBoundsFilter(bounds *domain.MapBounds) {
	if bounds == nil {
		return
	}
	qb.addRawCondition("p.latitude IS NOT NULL AND p.longitude IS NOT NULL")
	qb.AddFloatFilter("p.latitude", &bounds.South, &bounds.North)

	if bounds.CrossesAntimeridian() {
		qb.conditions = append(qb.conditions, fmt.Sprintf("(p.longitude >= $%d OR p.longitude <= $%d)", qb.argId, qb.argId+1))
		qb.args = append(qb.args, bounds.West, bounds.East)
		qb.argId += 2
		return
	}
	qb.AddFloatFilter("p.longitude", &bounds.West, &bounds.East)
}

// build создает финальные части запроса
func (qb *queryBuilder) build() (string, string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return qb.joinClause.String(), whereClause, qb.args
}

// applyFilters разбирает фильтры и строит JOIN, WHERE и аргументы
func applyFilters(filters domain.FindPropertiesFilters) (string, string, []interface{}) {
	qb := newQueryBuilder()

	if filters.PublishedOnly {
		qb.addCondition("%s = $%d", "p.status", string(domain.PropertyStatusPublished))
	} else if filters.Status != nil {
		qb.addCondition("%s = $%d", "p.status", string(*filters.Status))
	}

	// Поиск подстроки в названии, описании и названии локации
	if filters.Search != "" {
		qb.addSharedArgCondition(
			"(p.title ILIKE $%[1]d OR p.description ILIKE $%[1]d OR l.name ILIKE $%[1]d)",
			"%"+likeEscaper.Replace(filters.Search)+"%",
		)
	}

	if filters.PropertyType != nil {
		qb.addCondition("%s = $%d", "p.property_type", string(*filters.PropertyType))
	}

	if filters.FeaturedOnly {
		qb.addRawCondition("p.featured = true")
	}

	// Локация по id или slug; регион включает свои населенные пункты
	if len(filters.LocationKeys) > 0 {
		qb.addSharedArgCondition(
			"(l.id = ANY($%[1]d) OR l.slug = ANY($%[1]d) OR ml.id = ANY($%[1]d) OR ml.slug = ANY($%[1]d))",
			filters.LocationKeys,
		)
	}

	qb.AddIntFilter("p.bedrooms", filters.MinBedrooms, nil)
	qb.AddFloatFilter("p.price", filters.MinPrice, filters.MaxPrice)
	qb.AddBoundsFilter(filters.Bounds)

	return qb.build()
}

// pageOffset - OFFSET для страницы; при переполнении int возвращает math.MaxInt
func pageOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
