package searchpage

import (
	"avacasa/internal/core/domain"
	"sort"
)

// PageItem - элемент переключателя страниц: номер или многоточие
type PageItem struct {
	Number   int
	Ellipsis bool
	Current  bool
}

type PaginationControl struct {
	Items       []PageItem
	Current     int
	Pages       int
	Total       int
	PrevEnabled bool
	NextEnabled bool
}

// BuildPaginationControl строит окно: первая, последняя, текущая +-1, многоточия между ними.
// nil, если пагинации нет.
func BuildPaginationControl(meta *domain.PaginationMeta) *PaginationControl {
	if meta == nil || meta.Pages < 1 {
		return nil
	}

	pages := meta.Pages
	current := clamp(meta.Page, 1, pages)

	set := map[int]struct{}{1: {}, pages: {}}
	for _, n := range []int{current - 1, current, current + 1} {
		if n >= 1 && n <= pages {
			set[n] = struct{}{}
		}
	}
	numbers := make([]int, 0, len(set))
	for n := range set {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	items := make([]PageItem, 0, len(numbers)*2)
	prev := 0
	for _, n := range numbers {
		if prev != 0 && n-prev > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Number: n, Current: n == current})
		prev = n
	}

	return &PaginationControl{
		Items:       items,
		Current:     current,
		Pages:       pages,
		Total:       meta.Total,
		PrevEnabled: current > 1,
		NextEnabled: current < pages,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
