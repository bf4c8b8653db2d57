package telop

import (
	"sync"
	"time"
)

// Clock supplies the current playback time in seconds.
type Clock interface {
	Now() float64
}

// FixedClock always reports the same time.
type FixedClock float64

func (c FixedClock) Now() float64 { return float64(c) }

// ManualClock is set from outside, e.g. by a player reporting its position.
type ManualClock struct {
	mu sync.RWMutex
	t  float64
}

func (c *ManualClock) Now() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *ManualClock) Set(t float64) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// WallClock measures playback time from real time and can be paused and
// sought. The zero value is a paused clock at 0.
type WallClock struct {
	mu      sync.Mutex
	offset  float64
	started time.Time
	running bool
	now     func() time.Time
}

// NewWallClock returns a paused clock at 0 driven by time.Now.
func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

func (c *WallClock) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *WallClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed()
}

func (c *WallClock) elapsed() float64 {
	if !c.running {
		return c.offset
	}
	return c.offset + c.clock().Sub(c.started).Seconds()
}

// Play resumes the clock. Playing a running clock does nothing.
func (c *WallClock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.started = c.clock()
	c.running = true
}

// Pause freezes the clock at its current position.
func (c *WallClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = c.elapsed()
	c.running = false
}

// Running reports whether the clock is advancing.
func (c *WallClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Seek moves the clock to t, clamped at 0, keeping the play state.
func (c *WallClock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t < 0 {
		t = 0
	}
	c.offset = t
	c.started = c.clock()
}
