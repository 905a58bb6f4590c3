package searchpage

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"net/url"
	"sync"
	"time"
)

// PageEffects - побочные эффекты страницы, которые выполняет UI
type PageEffects interface {
	Render(view ResultView)
	ScrollToTop()
	FocusMarker(propertyID string)
	ScrollToCard(propertyID string)
}

type PageConfig struct {
	API           port.ListingAPIPort
	History       port.HistoryReplacer
	Effects       PageEffects
	Scheduler     Scheduler
	InitialQuery  url.Values
	PageSize      int
	DebounceDelay time.Duration
}

// PageController - единственный владелец состояния одной страницы поиска:
// фильтров, результатов, режима отображения и выбранного объекта.
type PageController struct {
	store    *FilterStore
	fetcher  *ListingFetcher
	viewport *ViewportBridge
	catalog  *LocationCatalog
	effects  PageEffects

	mu        sync.Mutex
	baseCtx   context.Context
	mode      ViewMode
	selection Selection
	closed    bool

	renderMu sync.Mutex
	// wgMu не дает таймеру карты вызвать wg.Add во время wg.Wait
	wgMu sync.RWMutex
	wg   sync.WaitGroup
}

func NewPageController(cfg PageConfig) *PageController {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = ViewportDebounceDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = WallClock{}
	}

	c := &PageController{
		store:   NewFilterStore(HydrateFilters(cfg.InitialQuery, cfg.PageSize), cfg.History),
		catalog: NewLocationCatalog(cfg.API),
		effects: cfg.Effects,
		baseCtx: context.Background(),
		mode:    ViewListAndMap,
	}
	c.fetcher = NewListingFetcher(cfg.API, c.render)
	c.viewport = NewViewportBridge(cfg.Scheduler, cfg.DebounceDelay, c.onBoundsSettled)
	return c
}

// Mount запускает первый запрос. ctx используется и для запросов по таймеру карты.
func (c *PageController) Mount(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PageController"})
	logger.Info("Search page mounted", port.Fields{"filters": c.store.State()})

	c.startFetch(ctx)
}

func (c *PageController) Search(ctx context.Context, query string) {
	c.dispatchAndFetch(ctx, SetQuery{Query: query})
}

func (c *PageController) SetPropertyType(ctx context.Context, pt *domain.PropertyType) {
	c.dispatchAndFetch(ctx, SetPropertyType{Type: pt})
}

func (c *PageController) SetLocations(ctx context.Context, ids []string) {
	c.dispatchAndFetch(ctx, SetLocations{IDs: ids})
}

func (c *PageController) SetBedrooms(ctx context.Context, bedrooms *int) {
	c.dispatchAndFetch(ctx, SetBedrooms{Bedrooms: bedrooms})
}

func (c *PageController) SetPriceRange(ctx context.Context, minPrice, maxPrice *float64) {
	c.dispatchAndFetch(ctx, SetPriceRange{Min: minPrice, Max: maxPrice})
}

func (c *PageController) SetFeatured(ctx context.Context, featured bool) {
	c.dispatchAndFetch(ctx, SetFeatured{Featured: featured})
}

// GoToPage меняет только номер страницы и прокручивает к началу
func (c *PageController) GoToPage(ctx context.Context, page int) {
	view := c.View()
	if view.Pagination != nil {
		page = clamp(page, 1, view.Pagination.Pages)
	}
	c.dispatchAndFetch(ctx, GoToPage{Page: page})
	if c.effects != nil {
		c.effects.ScrollToTop()
	}
}

// ClearFilters - действие "View All Properties"
func (c *PageController) ClearFilters(ctx context.Context) {
	c.dispatchAndFetch(ctx, ClearFilters{})
}

func (c *PageController) Refresh(ctx context.Context) {
	c.startFetch(ctx)
}

// OnBoundsChanged - событие движения карты
// Некорректный прямоугольник (NaN, Inf, south > north) отбрасывается до таймера.
func (c *PageController) OnBoundsChanged(bounds domain.MapBounds) {
	if err := bounds.Validate(); err != nil {
		c.mu.Lock()
		ctx := c.baseCtx
		c.mu.Unlock()
		contextkeys.LoggerFromContext(ctx).Warn("Map bounds rejected", port.Fields{
			"component": "PageController",
			"error":     err.Error(),
		})
		return
	}
	c.viewport.OnBoundsChanged(bounds)
	c.render()
}

// ToggleViewMode переключает ListOnly <-> ListAndMap
func (c *PageController) ToggleViewMode(ctx context.Context) ViewMode {
	c.mu.Lock()
	next, refetch := ToggleViewMode(c.mode)
	c.mode = next
	c.mu.Unlock()

	if refetch {
		c.viewport.Disable()
		c.startFetch(ctx)
	} else {
		c.viewport.Enable()
		c.render()
	}
	return next
}

func (c *PageController) SelectFromCard(propertyID string) {
	c.selectProperty(propertyID, SelectedFromCard)
}

func (c *PageController) SelectFromMarker(propertyID string) {
	c.selectProperty(propertyID, SelectedFromMarker)
}

// Locations возвращает локации для выпадающего списка
func (c *PageController) Locations(ctx context.Context, term string) ([]domain.SearchLocation, error) {
	if err := c.catalog.Load(ctx); err != nil {
		return nil, err
	}
	return c.catalog.Filter(term), nil
}

// ActiveLocations разрешает выбранные ID и slug в локации справочника.
// Неизвестный ключ возвращается как есть, с ключом вместо имени.
func (c *PageController) ActiveLocations(ctx context.Context) ([]domain.SearchLocation, error) {
	ids := c.store.State().LocationIDs
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.catalog.Load(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.SearchLocation, 0, len(ids))
	for _, id := range ids {
		loc, ok := c.catalog.Lookup(id)
		if !ok {
			loc = domain.SearchLocation{ID: id, Name: id, Slug: id}
		}
		out = append(out, loc)
	}
	return out, nil
}

func (c *PageController) Filters() domain.SearchFilters {
	return c.store.State()
}

func (c *PageController) Mode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// View вычисляет текущее представление
func (c *PageController) View() ResultView {
	c.mu.Lock()
	mode := c.mode
	selected := c.selection.ID()
	c.mu.Unlock()

	return Render(RenderInput{
		Mode:       mode,
		Filters:    c.store.State(),
		Bounds:     c.viewport.Bounds(),
		Fetch:      c.fetcher.State(),
		SelectedID: selected,
	})
}

// Wait дожидается завершения запросов в полете
func (c *PageController) Wait() {
	c.wgMu.Lock()
	defer c.wgMu.Unlock()
	c.wg.Wait()
}

// Close отменяет таймер карты и запрос в полете
func (c *PageController) Close() {
	// под wgMu: любой launch либо уже сделал Begin, либо увидит closed
	c.wgMu.Lock()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wgMu.Unlock()

	c.viewport.Close()
	c.fetcher.Cancel()
	c.Wait()
}

func (c *PageController) dispatchAndFetch(ctx context.Context, action Action) {
	c.store.Dispatch(action)
	c.startFetch(ctx)
}

func (c *PageController) selectProperty(propertyID string, source SelectionSource) {
	c.mu.Lock()
	effect := c.selection.Select(propertyID, source, c.mode)
	c.mu.Unlock()

	if c.effects != nil {
		if effect.FocusMarker {
			c.effects.FocusMarker(propertyID)
		}
		if effect.ScrollToCard {
			c.effects.ScrollToCard(propertyID)
		}
	}
	c.render()
}

// onBoundsSettled вызывается таймером после паузы в движении карты
func (c *PageController) onBoundsSettled(bounds domain.MapBounds) {
	c.mu.Lock()
	if c.closed || !c.mode.MapVisible() {
		c.mu.Unlock()
		return
	}
	ctx := c.baseCtx
	c.mu.Unlock()

	if c.store.State().Page != 1 {
		c.store.Dispatch(GoToPage{Page: 1})
	}
	b := bounds
	c.launch(ctx, &b)
}

func (c *PageController) startFetch(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	mapVisible := c.mode.MapVisible()
	c.mu.Unlock()

	var bounds *domain.MapBounds
	if mapVisible {
		bounds = c.viewport.Bounds()
	}
	c.launch(ctx, bounds)
}

func (c *PageController) launch(ctx context.Context, bounds *domain.MapBounds) {
	c.wgMu.RLock()
	defer c.wgMu.RUnlock()

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	call := c.fetcher.Begin(ctx, c.store.State(), bounds)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		call.Run()
	}()
}

func (c *PageController) render() {
	if c.effects == nil {
		return
	}
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.effects.Render(c.View())
}
