// Package viewport turns element visibility reports from the browser into
// page state: the highlighted nav link and the section theme.
package viewport

import (
	"sync"

	"github.com/samber/lo"
)

// Entry is one visibility report for a page element, as posted by the
// page's section observer.
type Entry struct {
	Target  string  `form:"target" json:"target" binding:"required"`
	Visible bool    `form:"visible" json:"visible"`
	Ratio   float64 `form:"ratio" json:"ratio" binding:"gte=0,lte=1"`
}

// Batch is the set of entries one observer callback delivers.
type Batch struct {
	Entries []Entry `json:"entries" binding:"required,min=1,dive"`
}

// Spy picks the active section among a fixed set of tracked ones.
type Spy struct {
	order map[string]int

	mu     sync.Mutex
	seen   map[string]Entry
	active string
}

func NewSpy(sections ...string) *Spy {
	return &Spy{
		order: lo.SliceToMapI(sections, func(section string, i int) (string, int) {
			return section, i
		}),
		seen: make(map[string]Entry),
	}
}

// Update applies a batch of reports. Observers only report sections whose
// visibility changed, so the last report of every section is kept and the
// visible one with the highest ratio becomes active, the earlier section on a
// tie. When nothing is visible the active section stays.
func (s *Spy) Update(entries ...Entry) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if _, ok := s.order[e.Target]; ok {
			s.seen[e.Target] = e
		}
	}

	visible := lo.Filter(lo.Values(s.seen), func(e Entry, _ int) bool { return e.Visible })
	if len(visible) == 0 {
		return s.active, false
	}
	best := lo.MaxBy(visible, func(a, b Entry) bool {
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		return s.order[a.Target] < s.order[b.Target]
	})
	changed := best.Target != s.active
	s.active = best.Target
	return s.active, changed
}

func (s *Spy) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Themes maps sections to the page theme shown while they are in view.
type Themes struct {
	bySection map[string]string

	mu      sync.Mutex
	current string
}

func NewThemes(bySection map[string]string) *Themes {
	return &Themes{bySection: lo.Assign(bySection)}
}

// Update switches to the theme of the first visible entry that has one.
func (t *Themes) Update(entries ...Entry) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range entries {
		if !e.Visible {
			continue
		}
		if theme, ok := t.bySection[e.Target]; ok {
			t.current = theme
			break
		}
	}
	return t.current
}

func (t *Themes) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
