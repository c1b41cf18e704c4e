package editor

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a changed context triggers a request.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delivers a value once it has stayed unchanged for the delay.
// Superseded values never fire, and a value equal to the last delivered one
// is not delivered again.
type Debouncer[T comparable] struct {
	delay time.Duration
	fire  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending T
	armed   bool
	last    T
	fired   bool
}

func NewDebouncer[T comparable](delay time.Duration, fire func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fire: fire}
}

// Push records a new value and restarts the quiet period if it changed.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.armed && v == d.pending {
		return
	}
	d.pending = v
	d.armed = true
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.expire(seq) })
}

func (d *Debouncer[T]) expire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	if d.fired && v == d.last {
		d.mu.Unlock()
		return
	}
	d.last, d.fired = v, true
	d.mu.Unlock()

	d.fire(v)
}

// Stop cancels any pending delivery.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
}
