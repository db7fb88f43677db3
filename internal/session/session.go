// Package session keeps per-visitor page state: the mounted slideshows, the
// lightbox and the scroll spy.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kelwa413/portfolio/internal/carousel"
	"github.com/kelwa413/portfolio/internal/content"
	"github.com/kelwa413/portfolio/internal/modal"
	"github.com/kelwa413/portfolio/internal/viewport"
)

// Session is one visitor's page.
type Session struct {
	ID       string
	Document *modal.Document
	Modal    *modal.Modal
	Spy      *viewport.Spy
	Themes   *viewport.Themes

	carousels map[string]*carousel.Carousel

	mu       sync.Mutex
	lastSeen time.Time
}

// Carousel returns the slideshow mounted for project id.
func (s *Session) Carousel(id string) (*carousel.Carousel, bool) {
	c, ok := s.carousels[id]
	return c, ok
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// close unmounts everything the session owns.
func (s *Session) close() {
	for _, c := range s.carousels {
		c.Close()
	}
	s.Modal.Unmount()
}

// Hub owns all live sessions.
type Hub struct {
	site  *content.Site
	clock clockwork.Clock
	log   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(site *content.Site, clk clockwork.Clock, log *slog.Logger) *Hub {
	return &Hub{
		site:     site,
		clock:    clk,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session with id, or mounts a fresh one under a new id
// when id is unknown or empty.
func (h *Hub) Get(id string) *Session {
	now := h.clock.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		s.touch(now)
		return s
	}
	s := h.mount(uuid.NewString(), now)
	h.sessions[s.ID] = s
	h.log.Debug("session mounted", "session", s.ID, "carousels", len(s.carousels))
	return s
}

// Lookup returns a live session without creating one.
func (h *Hub) Lookup(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if ok {
		s.touch(h.clock.Now())
	}
	return s, ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) mount(id string, now time.Time) *Session {
	doc := modal.NewDocument()
	s := &Session{
		ID:        id,
		Document:  doc,
		Modal:     modal.New(doc),
		Spy:       viewport.NewSpy(h.site.Sections()...),
		Themes:    viewport.NewThemes(h.site.Themes()),
		carousels: make(map[string]*carousel.Carousel),
		lastSeen:  now,
	}
	for _, p := range h.site.Projects {
		if len(p.Media.Images) == 0 {
			continue
		}
		s.carousels[p.ID] = carousel.New(p.ID, p.Media.Images, h.clock,
			carousel.WithInterval(p.Media.SlideInterval(carousel.DefaultInterval)),
			carousel.WithControls(p.Media.Controls),
		)
	}
	return s
}

// Expire closes sessions not seen for longer than idle and returns how many
// were removed.
func (h *Hub) Expire(idle time.Duration) int {
	cutoff := h.clock.Now().Add(-idle)

	h.mu.Lock()
	var stale []*Session
	for id, s := range h.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, s := range stale {
		s.close()
	}
	return len(stale)
}

// Reap expires idle sessions every interval until ctx is done.
func (h *Hub) Reap(ctx context.Context, idle, every time.Duration) {
	ticker := h.clock.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := h.Expire(idle); n > 0 {
				h.log.Info("expired idle sessions", "count", n, "live", h.Len())
			}
		}
	}
}

// Close unmounts every session.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
