package terminal

import (
	"avacasa/internal/core/searchpage"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
)

// Renderer рисует страницу поиска текстом и хранит "адресную строку".
// Реализует searchpage.PageEffects и port.HistoryReplacer.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer

	path  string
	query string
}

func NewRenderer(out io.Writer, path string) *Renderer {
	if path == "" {
		path = "/properties"
	}
	return &Renderer{out: out, path: path}
}

// ReplaceQuery заменяет текущий адрес без добавления записи в историю
func (r *Renderer) ReplaceQuery(_ url.Values, encoded string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = encoded
}

// Location - текущий адрес страницы
func (r *Renderer) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.query == "" {
		return r.path
	}
	return r.path + "?" + r.query
}

func (r *Renderer) ScrollToTop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, "^ scrolled to top")
}

func (r *Renderer) FocusMarker(propertyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "* map focused on %s\n", propertyID)
}

func (r *Renderer) ScrollToCard(propertyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "> list scrolled to %s\n", propertyID)
}

func (r *Renderer) Render(view searchpage.ResultView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	location := r.path
	if r.query != "" {
		location += "?" + r.query
	}

	fmt.Fprintf(r.out, "\n== %s [%s]\n", location, view.Mode)
	if view.Bounds != nil {
		b := view.Bounds
		fmt.Fprintf(r.out, "   map: N%.4f S%.4f E%.4f W%.4f\n", b.North, b.South, b.East, b.West)
	}
	if view.FiltersActive {
		fmt.Fprintln(r.out, "   filters active, type clear to reset")
	}

	switch {
	case view.Loading:
		for i := 0; i < view.Skeletons; i++ {
			fmt.Fprintln(r.out, "   ░░░░░░░░░░░░░░░░░░░░")
		}
		return
	case view.Empty != nil:
		fmt.Fprintf(r.out, "   %s\n   %s\n   %s\n   [%s]\n",
			view.Empty.Title, view.Empty.Message, view.Empty.Hint, view.Empty.ActionLabel)
		return
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tTYPE\tPRICE\tBEDS\tLOCATION\t")
	for _, card := range view.Cards {
		mark := " "
		if card.Selected {
			mark = ">"
		}
		if card.Featured {
			mark += "★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			mark, card.ID, card.Title, card.TypeLabel, card.PriceLabel, optionalInt(card.Bedrooms), card.LocationName)
	}
	_ = tw.Flush()

	if len(view.Markers) > 0 {
		parts := make([]string, 0, len(view.Markers))
		for _, m := range view.Markers {
			label := fmt.Sprintf("%s:%s", m.Geohash, m.Label)
			if m.Selected {
				label = "[" + label + "]"
			}
			parts = append(parts, label)
		}
		fmt.Fprintf(r.out, "   markers: %s\n", strings.Join(parts, " "))
	}

	if p := view.Pagination; p != nil {
		fmt.Fprintf(r.out, "   %s  (%d results)\n", formatPagination(p), p.Total)
	}
}

func formatPagination(p *searchpage.PaginationControl) string {
	var sb strings.Builder
	if p.PrevEnabled {
		sb.WriteString("< Prev ")
	} else {
		sb.WriteString("  ---- ")
	}
	for _, item := range p.Items {
		switch {
		case item.Ellipsis:
			sb.WriteString("… ")
		case item.Current:
			sb.WriteString("[" + strconv.Itoa(item.Number) + "] ")
		default:
			sb.WriteString(strconv.Itoa(item.Number) + " ")
		}
	}
	if p.NextEnabled {
		sb.WriteString("Next >")
	} else {
		sb.WriteString("----")
	}
	return sb.String()
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
