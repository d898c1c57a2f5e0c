// Package handoff passes frames and input between a render goroutine and a
// display goroutine.
//
// The render side records a frame and publishes it with PutFrame; the
// display side picks up the newest frame with Frame and replays it. Input
// flows the other way through Push and Drain. Sizes are published by the
// display side and read by the render side.
package handoff

import (
	"sync"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/recording"
)

// Mailbox is safe for concurrent use by one render and one display goroutine.
type Mailbox struct {
	mu sync.Mutex

	frame   *recording.Recording
	version uint64

	events    []canvas.Event
	maxEvents int
	dropped   int
	quit      bool // a Quit arrived while the queue was full

	width, height int
}

// New creates a Mailbox for a width x height surface holding at most
// maxEvents undrained events.
func New(width, height, maxEvents int) *Mailbox {
	return &Mailbox{
		width:     width,
		height:    height,
		maxEvents: maxEvents,
	}
}

// PutFrame publishes r as the newest frame.
func (m *Mailbox) PutFrame(r *recording.Recording) {
	m.mu.Lock()
	m.frame = r
	m.version++
	m.mu.Unlock()
}

// Frame returns the newest frame and its version. Versions start at 1 and
// grow by one per PutFrame; version 0 means no frame yet.
func (m *Mailbox) Frame() (*recording.Recording, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame, m.version
}

// Push queues an event. A MouseMove directly after another MouseMove
// replaces it. When the queue is full the event is dropped and Push returns
// false, except for Quit, which is always delivered by the next Drain.
func (m *Mailbox) Push(e canvas.Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := e.(canvas.MouseMove); ok && len(m.events) > 0 {
		if _, ok := m.events[len(m.events)-1].(canvas.MouseMove); ok {
			m.events[len(m.events)-1] = e
			return true
		}
	}
	if len(m.events) >= m.maxEvents {
		if _, ok := e.(canvas.Quit); ok {
			m.quit = true
			return true
		}
		m.dropped++
		return false
	}
	m.events = append(m.events, e)
	return true
}

// Drain returns and clears the queued events.
func (m *Mailbox) Drain() []canvas.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.events
	if m.quit {
		events = append(events, canvas.Quit{})
		m.quit = false
	}
	m.events = nil
	return events
}

// Dropped returns how many events were dropped because the queue was full.
func (m *Mailbox) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// SetSize records the display size and reports whether it changed.
func (m *Mailbox) SetSize(width, height int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if width == m.width && height == m.height {
		return false
	}
	m.width, m.height = width, height
	return true
}

// Size returns the last display size.
func (m *Mailbox) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Wheel turns fractional wheel offsets, as reported by touchpads, into
// whole scroll notches.
type Wheel struct {
	x, y float64
}

// Add accumulates an offset and returns the whole notches ready to emit.
func (w *Wheel) Add(dx, dy float64) (nx, ny int) {
	w.x += dx
	w.y += dy
	nx, ny = int(w.x), int(w.y)
	w.x -= float64(nx)
	w.y -= float64(ny)
	return nx, ny
}
