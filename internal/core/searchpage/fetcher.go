package searchpage

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"sync"
)

// FetchState - то, что видит рендерер
type FetchState struct {
	Results    []domain.PropertySummary
	Pagination *domain.PaginationMeta
	Loading    bool
	// Seq - номер запроса, результат которого сейчас применен
	Seq uint64
}

// ListingFetcher выполняет запрос выдачи и нормализует результат.
// Каждый запрос получает возрастающий номер; новый запрос отменяет предыдущий,
// а ответ с устаревшим номером отбрасывается.
type ListingFetcher struct {
	api      port.ListingAPIPort
	onChange func()

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  FetchState
}

// NewListingFetcher. onChange вызывается без удержания блокировок после каждого изменения состояния
func NewListingFetcher(api port.ListingAPIPort, onChange func()) *ListingFetcher {
	if onChange == nil {
		onChange = func() {}
	}
	return &ListingFetcher{
		api:      api,
		onChange: onChange,
		state:    FetchState{Results: []domain.PropertySummary{}},
	}
}

// State возвращает копию текущего состояния
func (f *ListingFetcher) State() FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyFetchState(f.state)
}

// Fetch выполняет ровно один GET и блокируется до его завершения.
// Возвращает true, если результат применен (запрос не устарел).
func (f *ListingFetcher) Fetch(ctx context.Context, filters domain.SearchFilters, bounds *domain.MapBounds) bool {
	return f.Begin(ctx, filters, bounds).Run()
}

// FetchCall - начатый запрос. Номер присваивается в Begin, поэтому порядок
// вызовов Begin определяет, какой ответ считается последним.
type FetchCall struct {
	fetcher *ListingFetcher
	ctx     context.Context
	cancel  context.CancelFunc
	query   ListingQuery
	seq     uint64
}

// Begin отменяет предыдущий запрос, выставляет loading и возвращает новый запрос
func (f *ListingFetcher) Begin(ctx context.Context, filters domain.SearchFilters, bounds *domain.MapBounds) *FetchCall {
	fetchCtx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++
	call := &FetchCall{
		fetcher: f,
		ctx:     fetchCtx,
		cancel:  cancel,
		query:   BuildListingQuery(filters, bounds),
		seq:     f.seq,
	}
	f.cancel = cancel
	f.state.Loading = true
	f.mu.Unlock()

	f.onChange()
	return call
}

func (c *FetchCall) Seq() uint64 {
	return c.seq
}

// Run выполняет GET и применяет результат, если запрос все еще последний
func (c *FetchCall) Run() bool {
	f := c.fetcher
	defer c.cancel()

	logger := contextkeys.LoggerFromContext(c.ctx).WithFields(port.Fields{
		"component": "ListingFetcher",
		"seq":       c.seq,
	})
	logger.Debug("Fetching listings", port.Fields{"query": c.query.Encode()})

	page, err := f.api.FetchProperties(c.ctx, c.query.Encode())

	f.mu.Lock()
	if c.seq != f.seq {
		f.mu.Unlock()
		logger.Debug("Discarding stale listing response", nil)
		return false
	}
	f.cancel = nil
	if err != nil {
		f.state = FetchState{Results: []domain.PropertySummary{}, Seq: c.seq}
	} else {
		f.state = successState(page, c.seq)
	}
	f.mu.Unlock()

	if err != nil {
		logger.Error("Listing fetch failed", err, nil)
	}
	f.onChange()
	return true
}

// Cancel отменяет запрос в полете; его ответ будет отброшен
func (f *ListingFetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
	f.state.Loading = false
}

func successState(page *domain.ListingPage, seq uint64) FetchState {
	if page == nil {
		return FetchState{Results: []domain.PropertySummary{}, Seq: seq}
	}
	results := page.Results
	if results == nil {
		results = []domain.PropertySummary{}
	}
	meta := page.Pagination
	return FetchState{Results: results, Pagination: &meta, Seq: seq}
}

func copyFetchState(s FetchState) FetchState {
	out := s
	out.Results = append([]domain.PropertySummary(nil), s.Results...)
	if out.Results == nil {
		out.Results = []domain.PropertySummary{}
	}
	if s.Pagination != nil {
		meta := *s.Pagination
		out.Pagination = &meta
	}
	return out
}
