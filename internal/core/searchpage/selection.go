package searchpage

// SelectionSource - откуда пришел выбор объекта
type SelectionSource int

const (
	SelectedFromCard SelectionSource = iota
	SelectedFromMarker
)

// SelectionEffect - что должна сделать другая панель после выбора
type SelectionEffect struct {
	FocusMarker  bool
	ScrollToCard bool
}

// Selection - единственный выбранный объект, общий для списка и карты.
// Это только подсветка, без перехода на страницу объекта.
type Selection struct {
	id string
}

func (s *Selection) Select(id string, source SelectionSource, mode ViewMode) SelectionEffect {
	s.id = id
	if id == "" {
		return SelectionEffect{}
	}
	if source == SelectedFromCard {
		return SelectionEffect{FocusMarker: mode.MapVisible()}
	}
	return SelectionEffect{ScrollToCard: true}
}

func (s *Selection) ID() string {
	return s.id
}
