package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PropertyType - внутреннее значение типа объекта (как оно хранится в БД и уходит в API)
type PropertyType string

const (
	PropertyTypeApartment   PropertyType = "APARTMENT"
	PropertyTypeVilla       PropertyType = "VILLA"
	PropertyTypeHolidayHome PropertyType = "HOLIDAY_HOME"
	PropertyTypePenthouse   PropertyType = "PENTHOUSE"
	PropertyTypePlot        PropertyType = "PLOT"
	PropertyTypeFarmhouse   PropertyType = "FARMHOUSE"
	PropertyTypeTownhouse   PropertyType = "TOWNHOUSE"
	PropertyTypeStudio      PropertyType = "STUDIO"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
)

// propertyTypeTokens - единственная таблица соответствия URL-токен <-> значение.
// Порядок задает порядок быстрых фильтров в интерфейсе.
var propertyTypeTokens = []struct {
	token string
	value PropertyType
}{
	{"apartment", PropertyTypeApartment},
	{"villa", PropertyTypeVilla},
	{"holiday-home", PropertyTypeHolidayHome},
	{"penthouse", PropertyTypePenthouse},
	{"plot", PropertyTypePlot},
	{"farmhouse", PropertyTypeFarmhouse},
	{"townhouse", PropertyTypeTownhouse},
	{"studio", PropertyTypeStudio},
	{"commercial", PropertyTypeCommercial},
}

var (
	tokenToPropertyType = make(map[string]PropertyType, len(propertyTypeTokens))
	propertyTypeToToken = make(map[PropertyType]string, len(propertyTypeTokens))
)

func init() {
	for _, entry := range propertyTypeTokens {
		tokenToPropertyType[entry.token] = entry.value
		propertyTypeToToken[entry.value] = entry.token
	}
}

// AllPropertyTypes возвращает все известные типы в порядке таблицы
func AllPropertyTypes() []PropertyType {
	result := make([]PropertyType, len(propertyTypeTokens))
	for i, entry := range propertyTypeTokens {
		result[i] = entry.value
	}
	return result
}

// ParsePropertyType принимает и URL-токен ("holiday-home"), и значение ("HOLIDAY_HOME"),
// без учета регистра. Второй результат false для неизвестных значений.
func ParsePropertyType(raw string) (PropertyType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}
	if value, ok := tokenToPropertyType[normalized]; ok {
		return value, true
	}
	// HOLIDAY_HOME -> holiday-home
	if value, ok := tokenToPropertyType[strings.ReplaceAll(normalized, "_", "-")]; ok {
		return value, true
	}
	return "", false
}

// Token возвращает URL-токен типа
func (t PropertyType) Token() string {
	return propertyTypeToToken[t]
}

// IsValid - входит ли значение в таблицу
func (t PropertyType) IsValid() bool {
	_, ok := propertyTypeToToken[t]
	return ok
}

// Label - человекочитаемое название, например "Holiday Home"
func (t PropertyType) Label() string {
	words := strings.ReplaceAll(strings.ToLower(string(t)), "_", " ")
	return cases.Title(language.English).String(words)
}
