// Package carousel implements the project slideshow: an auto-advancing,
// hover-pausable image carousel with manual navigation.
//
// A Carousel owns its current index and a single rearmable advance timer.
// Every change of index or pause state either cancels the timer (pause) or
// cancels and rearms it (everything else), so the next automatic advance is
// always one full interval after the last change.
package carousel

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// State is a snapshot of a Carousel.
type State struct {
	Index  int  `json:"index"`
	Paused bool `json:"paused"`
	Armed  bool `json:"armed"`
}

// Carousel is one mounted slideshow. It is safe for concurrent use; all
// operations are serialised and run to completion one at a time.
type Carousel struct {
	id       string
	images   []string
	interval time.Duration
	controls bool

	mu     sync.Mutex
	slot   *Slot
	index  int
	paused bool
	closed bool

	subSeq int
	subs   map[int]chan State
}

// New mounts a slideshow over images. The slice is copied.
func New(id string, images []string, clk clockwork.Clock, opts ...Option) *Carousel {
	o := options{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Carousel{
		id:       id,
		images:   append([]string(nil), images...),
		interval: o.interval,
		controls: o.controls,
		subs:     make(map[int]chan State),
	}
	c.slot = NewSlot(clk, &c.mu)

	c.mu.Lock()
	c.rearm()
	c.mu.Unlock()
	return c
}

func (c *Carousel) ID() string { return c.id }

func (c *Carousel) Len() int { return len(c.images) }

func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// Next moves one slide forward.
func (c *Carousel) Next() {
	c.navigate(func(i, n int) int { return (i + 1) % n })
}

// Prev moves one slide back.
func (c *Carousel) Prev() {
	c.navigate(func(i, n int) int { return (i - 1 + n) % n })
}

// GoTo jumps to slide i. Any integer is accepted and wrapped into range.
func (c *Carousel) GoTo(i int) {
	c.navigate(func(_, n int) int { return ((i % n) + n) % n })
}

// PointerEnter pauses auto-advance without changing the slide.
func (c *Carousel) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.paused = true
	c.slot.Cancel()
	c.publish()
}

// PointerLeave resumes auto-advance with a fresh full interval.
func (c *Carousel) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.paused = false
	c.rearm()
	c.publish()
}

// Close unmounts the slideshow: the pending timer is cancelled and every
// subscription channel is closed. Later calls are no-ops.
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.slot.Cancel()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

// Subscribe returns a channel that receives the newest state after every
// change. Slow readers skip intermediate states. The returned func ends the
// subscription.
func (c *Carousel) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subSeq++
	id := c.subSeq
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

func (c *Carousel) navigate(move func(i, n int) int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.images)
	if c.closed || n == 0 {
		return
	}
	c.slot.Cancel()
	c.index = move(c.index, n)
	c.rearm()
	c.publish()
}

// advance is the timer action; mu is held by the slot.
func (c *Carousel) advance() {
	if c.closed || c.paused || len(c.images) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.images)
	c.rearm()
	c.publish()
}

func (c *Carousel) rearm() {
	c.slot.Cancel()
	if c.closed || c.paused || len(c.images) <= 1 || c.interval <= 0 {
		return
	}
	c.slot.Arm(c.interval, c.advance)
}

func (c *Carousel) state() State {
	return State{Index: c.index, Paused: c.paused, Armed: c.slot.Armed()}
}

func (c *Carousel) publish() {
	st := c.state()
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}
