// Package modal implements the project lightbox and the page scroll lock it
// holds while open.
package modal

import (
	"sort"
	"sync"
)

// NoScroll is the class applied to the page while a modal is open.
const NoScroll = "no-scroll"

// Document tracks the classes applied to a visitor's page root. Each class
// is reference counted so overlapping holders do not undo each other.
type Document struct {
	mu      sync.Mutex
	classes map[string]int
}

func NewDocument() *Document {
	return &Document{classes: make(map[string]int)}
}

// Lock is a scoped hold on a document class.
type Lock struct {
	doc   *Document
	class string
	once  sync.Once
}

// Acquire applies class until the returned Lock is released.
func (d *Document) Acquire(class string) *Lock {
	d.mu.Lock()
	d.classes[class]++
	d.mu.Unlock()
	return &Lock{doc: d, class: class}
}

// Release drops the hold. Calling it more than once is harmless.
func (l *Lock) Release() {
	l.once.Do(func() {
		l.doc.mu.Lock()
		defer l.doc.mu.Unlock()
		l.doc.classes[l.class]--
		if l.doc.classes[l.class] <= 0 {
			delete(l.doc.classes, l.class)
		}
	})
}

func (d *Document) Has(class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classes[class] > 0
}

// Classes returns the applied classes in a stable order.
func (d *Document) Classes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.classes))
	for c := range d.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
