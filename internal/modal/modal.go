package modal

import "sync"

const (
	Landscape = "landscape"
	Portrait  = "portrait"
)

// View is the render model of a Modal.
type View struct {
	Open    bool
	Variant string
	Target  string
}

// Modal is a lightbox showing one project's media. While open it holds the
// document's scroll lock; every way out of the open state releases it.
type Modal struct {
	doc *Document

	mu      sync.Mutex
	open    bool
	variant string
	target  string
	lock    *Lock
}

func New(doc *Document) *Modal {
	return &Modal{doc: doc, variant: Landscape}
}

// Open shows target. Opening an already open modal swaps its content and
// keeps the existing lock.
func (m *Modal) Open(target, variant string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if variant != Portrait {
		variant = Landscape
	}
	m.target = target
	m.variant = variant
	if m.open {
		return
	}
	m.open = true
	m.lock = m.doc.Acquire(NoScroll)
}

func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

// Key handles a key press while the modal is mounted. Escape closes an open
// modal; it reports whether that happened.
func (m *Modal) Key(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || key != "Escape" {
		return false
	}
	m.closeLocked()
	return true
}

// Unmount releases everything the modal holds, open or not.
func (m *Modal) Unmount() {
	m.Close()
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{Open: m.open, Variant: m.variant, Target: m.target}
}

func (m *Modal) closeLocked() {
	if m.lock != nil {
		m.lock.Release()
		m.lock = nil
	}
	m.open = false
	m.target = ""
}
