package searchpage

import "time"

// Timer - отменяемое отложенное действие
type Timer interface {
	// Stop возвращает false, если действие уже выполнено или остановлено
	Stop() bool
}

// Scheduler планирует вызов f через d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClock - Scheduler поверх time.AfterFunc
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
