package searchpage

import (
	"avacasa/internal/core/domain"
	"context"
	"net/url"
	"sort"
	"sync"
	"time"
)

// manualClock - Scheduler, время которого двигает тест
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance сдвигает время и синхронно выполняет созревшие таймеры
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

func (c *manualClock) activeTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fakeListingAPI записывает запросы и отвечает через respond
type fakeListingAPI struct {
	mu        sync.Mutex
	queries   []string
	respond   func(ctx context.Context, query string) (*domain.ListingPage, error)
	locations []domain.SearchLocation
	locErr    error
	locCalls  int
}

func (f *fakeListingAPI) FetchProperties(ctx context.Context, query string) (*domain.ListingPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return &domain.ListingPage{Results: []domain.PropertySummary{}, Pagination: domain.NewPaginationMeta(1, 12, 0)}, nil
	}
	return respond(ctx, query)
}

func (f *fakeListingAPI) FetchLocations(ctx context.Context) ([]domain.SearchLocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locCalls++
	if f.locErr != nil {
		return nil, f.locErr
	}
	return f.locations, nil
}

func (f *fakeListingAPI) recordedQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type recordingHistory struct {
	mu      sync.Mutex
	encoded []string
}

func (h *recordingHistory) ReplaceQuery(_ url.Values, encoded string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.encoded = append(h.encoded, encoded)
}

func (h *recordingHistory) last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.encoded) == 0 {
		return ""
	}
	return h.encoded[len(h.encoded)-1]
}

type recordingEffects struct {
	mu         sync.Mutex
	renders    int
	lastView   ResultView
	scrollTops int
	focused    []string
	scrolledTo []string
}

func (e *recordingEffects) Render(view ResultView) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renders++
	e.lastView = view
}

func (e *recordingEffects) ScrollToTop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrollTops++
}

func (e *recordingEffects) FocusMarker(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focused = append(e.focused, id)
}

func (e *recordingEffects) ScrollToCard(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrolledTo = append(e.scrolledTo, id)
}

func intPtr(v int) *int                                  { return &v }
func floatPtr(v float64) *float64                        { return &v }
func typePtr(v domain.PropertyType) *domain.PropertyType { return &v }

func sampleProperty(id string, lat, lng float64) domain.PropertySummary {
	return domain.PropertySummary{
		ID:           id,
		Title:        "Property " + id,
		Slug:         "property-" + id,
		Price:        5000000,
		Bedrooms:     intPtr(3),
		Images:       []string{"https://cdn.example.com/" + id + ".jpg"},
		Location:     &domain.LocationRef{ID: "loc-1", Name: "Assagao", Slug: "assagao"},
		PropertyType: domain.PropertyTypeVilla,
		Latitude:     floatPtr(lat),
		Longitude:    floatPtr(lng),
	}
}
