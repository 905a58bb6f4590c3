package searchpage

// ViewMode - режим отображения результатов
type ViewMode int

const (
	ViewListAndMap ViewMode = iota
	ViewListOnly
)

func (m ViewMode) String() string {
	if m == ViewListOnly {
		return "list"
	}
	return "list+map"
}

func (m ViewMode) MapVisible() bool {
	return m == ViewListAndMap
}

// ToggleViewMode возвращает следующий режим и признак того, что нужен
// немедленный перезапрос без bounds (переход ListAndMap -> ListOnly)
func ToggleViewMode(current ViewMode) (next ViewMode, refetchWithoutBounds bool) {
	if current == ViewListAndMap {
		return ViewListOnly, true
	}
	return ViewListAndMap, false
}
