package clock

import (
	"sync"
	"time"
)

// Source supplies the logical clock tick for operations whose caller did not
// provide one. Ticks are monotonically non-decreasing across the process.
type Source interface {
	Tick() uint64
}

// Wall derives ticks from wall time at a fixed interval, mirroring a block
// height advancing at a nominal rate. With the default 10 minute interval the
// duration policy's [144, 52560] window reads as roughly one day to one year.
type Wall struct {
	interval time.Duration
}

func NewWall(interval time.Duration) *Wall {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Wall{interval: interval}
}

func (w *Wall) Tick() uint64 {
	return uint64(time.Now().Unix() / int64(w.interval.Seconds()))
}

// Manual is a hand-advanced clock for tests and deterministic harnesses.
type Manual struct {
	mu   sync.Mutex
	tick uint64
}

func NewManual(start uint64) *Manual {
	return &Manual{tick: start}
}

func (m *Manual) Tick() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick
}

// Advance moves the clock forward by n ticks.
func (m *Manual) Advance(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick += n
}

// Set jumps to an absolute tick. It never moves the clock backwards.
func (m *Manual) Set(tick uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tick > m.tick {
		m.tick = tick
	}
}
