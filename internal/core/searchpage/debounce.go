package searchpage

import (
	"sync"
	"time"
)

type DebounceState int

const (
	DebounceIdle DebounceState = iota
	DebouncePending
	DebounceFired
	DebounceCancelled
	DebounceClosed
)

func (s DebounceState) String() string {
	switch s {
	case DebounceIdle:
		return "idle"
	case DebouncePending:
		return "pending"
	case DebounceFired:
		return "fired"
	case DebounceCancelled:
		return "cancelled"
	case DebounceClosed:
		return "closed"
	}
	return "unknown"
}

// Debouncer выполняет только последнее действие после периода тишины delay.
// Каждый Trigger перезапускает таймер. После Close новые вызовы игнорируются.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration

	mu    sync.Mutex
	timer Timer
	gen   uint64
	state DebounceState
}

func NewDebouncer(scheduler Scheduler, delay time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = WallClock{}
	}
	return &Debouncer{scheduler: scheduler, delay: delay}
}

// Trigger планирует fn, отменяя ранее запланированное действие
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == DebounceClosed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.state = DebouncePending
	d.timer = d.scheduler.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// таймер мог сработать уже после отмены или перезапуска
		if d.gen != gen || d.state != DebouncePending {
			d.mu.Unlock()
			return
		}
		d.state = DebounceFired
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel снимает ожидающее действие. Возвращает true, если оно было.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Close отменяет ожидающее действие и запрещает новые
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.state = DebounceClosed
}

func (d *Debouncer) State() DebounceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Debouncer) cancelLocked() bool {
	if d.state != DebouncePending {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.state = DebounceCancelled
	return true
}
