package domain

// LocationKind - major (регион) или minor (населенный пункт внутри региона)
type LocationKind string

const (
	LocationKindMajor LocationKind = "major"
	LocationKindMinor LocationKind = "minor"
)

// SearchLocation - элемент плоского списка для выпадающего выбора локации
type SearchLocation struct {
	ID              string
	Name            string
	Slug            string
	Kind            LocationKind
	MajorLocationID *string
	PropertyCount   int
}
