package searchpage

import (
	"avacasa/internal/core/domain"
	"sync"
	"time"
)

// ViewportDebounceDelay - период тишины после движения карты
const ViewportDebounceDelay = 500 * time.Millisecond

// ViewportBridge превращает частые события движения карты в редкие перезапросы.
// Последний прямоугольник сохраняется сразу, перезапрос только после паузы
// и только пока карта показана.
type ViewportBridge struct {
	debouncer *Debouncer
	onSettled func(domain.MapBounds)

	mu      sync.Mutex
	latest  *domain.MapBounds
	enabled bool
}

func NewViewportBridge(scheduler Scheduler, delay time.Duration, onSettled func(domain.MapBounds)) *ViewportBridge {
	return &ViewportBridge{
		debouncer: NewDebouncer(scheduler, delay),
		onSettled: onSettled,
		enabled:   true,
	}
}

// OnBoundsChanged вызывается на каждое событие карты
func (v *ViewportBridge) OnBoundsChanged(bounds domain.MapBounds) {
	v.mu.Lock()
	b := bounds
	v.latest = &b
	enabled := v.enabled
	v.mu.Unlock()

	if !enabled {
		return
	}
	v.debouncer.Trigger(func() {
		if v.onSettled != nil {
			v.onSettled(bounds)
		}
	})
}

// Enable включает перезапросы по карте (режим ListAndMap)
func (v *ViewportBridge) Enable() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enabled = true
}

// Disable отменяет ожидающий перезапрос и сбрасывает прямоугольник (режим ListOnly)
func (v *ViewportBridge) Disable() {
	v.mu.Lock()
	v.enabled = false
	v.latest = nil
	v.mu.Unlock()
	v.debouncer.Cancel()
}

// Bounds возвращает последний прямоугольник или nil
func (v *ViewportBridge) Bounds() *domain.MapBounds {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.latest == nil {
		return nil
	}
	b := *v.latest
	return &b
}

func (v *ViewportBridge) Pending() bool {
	return v.debouncer.State() == DebouncePending
}

// Close вызывается при закрытии страницы
func (v *ViewportBridge) Close() {
	v.debouncer.Close()
}
