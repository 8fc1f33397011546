package utils

import (
	"sync"
	"time"
)

// Pacer spaces out consecutive scrape attempts so the target site sees at
// most one navigation per delay window.
type Pacer struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

// NewPacer creates a Pacer with the given minimum delay between calls.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks until at least the configured delay has passed since the
// previous call.
func (p *Pacer) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.lastCall)
	if elapsed < p.delay {
		time.Sleep(p.delay - elapsed)
	}
	p.lastCall = time.Now()
}
