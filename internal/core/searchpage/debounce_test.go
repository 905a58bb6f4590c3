package searchpage

import (
	"avacasa/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_OnlyLastActionFires(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(clock, 500*time.Millisecond)

	var fired []int
	for i := 1; i <= 3; i++ {
		n := i
		d.Trigger(func() { fired = append(fired, n) })
		clock.Advance(200 * time.Millisecond)
	}
	assert.Empty(t, fired)
	assert.Equal(t, DebouncePending, d.State())

	clock.Advance(300 * time.Millisecond)

	assert.Equal(t, []int{3}, fired)
	assert.Equal(t, DebounceFired, d.State())
	assert.Equal(t, 0, clock.activeTimers())
}

func TestDebouncer_CancelAndClose(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(clock, 500*time.Millisecond)

	assert.False(t, d.Cancel())

	calls := 0
	d.Trigger(func() { calls++ })
	assert.True(t, d.Cancel())
	assert.Equal(t, DebounceCancelled, d.State())
	clock.Advance(time.Second)
	assert.Equal(t, 0, calls)

	d.Trigger(func() { calls++ })
	d.Close()
	d.Trigger(func() { calls++ })
	clock.Advance(time.Second)

	assert.Equal(t, 0, calls)
	assert.Equal(t, DebounceClosed, d.State())
	assert.Equal(t, "closed", d.State().String())
}

func TestViewportBridge_DebouncesPans(t *testing.T) {
	clock := &manualClock{}
	var settled []domain.MapBounds
	bridge := NewViewportBridge(clock, ViewportDebounceDelay, func(b domain.MapBounds) {
		settled = append(settled, b)
	})

	pans := []domain.MapBounds{
		{North: 15.8, South: 15.0, East: 74.0, West: 73.5},
		{North: 15.9, South: 15.1, East: 74.1, West: 73.6},
		{North: 16.0, South: 15.2, East: 74.2, West: 73.7},
	}
	for _, b := range pans {
		bridge.OnBoundsChanged(b)
		clock.Advance(100 * time.Millisecond)
	}

	// последний прямоугольник виден сразу
	require.NotNil(t, bridge.Bounds())
	assert.Equal(t, pans[2], *bridge.Bounds())
	assert.Empty(t, settled)

	clock.Advance(ViewportDebounceDelay)

	require.Len(t, settled, 1)
	assert.Equal(t, pans[2], settled[0])
}

func TestViewportBridge_DisableCancelsPending(t *testing.T) {
	clock := &manualClock{}
	calls := 0
	bridge := NewViewportBridge(clock, ViewportDebounceDelay, func(domain.MapBounds) { calls++ })

	bridge.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	assert.True(t, bridge.Pending())

	bridge.Disable()
	clock.Advance(time.Second)

	assert.Equal(t, 0, calls)
	assert.Nil(t, bridge.Bounds())

	// в режиме списка события карты не приводят к запросам
	bridge.OnBoundsChanged(domain.MapBounds{North: 2, South: 0, East: 1, West: 0})
	clock.Advance(time.Second)
	assert.Equal(t, 0, calls)
	assert.False(t, bridge.Pending())
}

func TestViewportBridge_CloseCancelsPending(t *testing.T) {
	clock := &manualClock{}
	calls := 0
	bridge := NewViewportBridge(clock, ViewportDebounceDelay, func(domain.MapBounds) { calls++ })

	bridge.OnBoundsChanged(domain.MapBounds{North: 1, South: 0, East: 1, West: 0})
	bridge.Close()
	clock.Advance(time.Second)

	assert.Equal(t, 0, calls)
}
