// Package content holds the static copy of the portfolio page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed site.toml
var defaultSite []byte

type Link struct {
	Label    string `toml:"label" validate:"required"`
	Href     string `toml:"href" validate:"required"`
	Primary  bool   `toml:"primary"`
	Disabled bool   `toml:"disabled"`
	External bool   `toml:"external"`
}

// Media is what a project card shows: a video, or an image slideshow when
// Images is non-empty.
type Media struct {
	Video    string   `toml:"video"`
	Poster   string   `toml:"poster"`
	Portrait bool     `toml:"portrait"`
	Images   []string `toml:"images" validate:"dive,required"`
	// Interval is the slideshow delay in milliseconds. Nil means the default;
	// zero or negative disables auto-advance.
	Interval *int `toml:"interval"`
	Controls bool `toml:"controls"`
}

// SlideInterval converts Interval to a duration, using def when unset.
func (m Media) SlideInterval(def time.Duration) time.Duration {
	if m.Interval == nil {
		return def
	}
	return time.Duration(*m.Interval) * time.Millisecond
}

type Project struct {
	ID      string   `toml:"id" validate:"required,alphanum"`
	Title   string   `toml:"title" validate:"required"`
	Heading string   `toml:"heading" validate:"required"`
	Summary string   `toml:"summary" validate:"required"`
	Theme   string   `toml:"theme"`
	Flip    bool     `toml:"flip"`
	Tags    []string `toml:"tags"`
	Links   []Link   `toml:"links" validate:"dive"`
	Media   Media    `toml:"media"`
}

type NavItem struct {
	Section string `toml:"section" validate:"required"`
	Label   string `toml:"label" validate:"required"`
}

type Site struct {
	Owner    string    `toml:"owner" validate:"required"`
	Kicker   string    `toml:"kicker"`
	Headline string    `toml:"headline" validate:"required"`
	Lead     string    `toml:"lead"`
	Portrait string    `toml:"portrait"`
	Resume   string    `toml:"resume"`
	About    string    `toml:"about" validate:"required"`
	Contact  string    `toml:"contact"`
	Email    string    `toml:"email" validate:"omitempty,email"`
	Footer   string    `toml:"footer"`
	Links    []Link    `toml:"links" validate:"dive"`
	Nav      []NavItem `toml:"nav" validate:"dive"`
	Projects []Project `toml:"projects" validate:"dive"`
}

var validate = validator.New()

// Default returns the embedded site copy.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// Load reads the site copy from path, or the embedded copy when path is
// empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Site, error) {
	var site Site
	if err := toml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := validate.Struct(&site); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	seen := make(map[string]bool, len(site.Projects))
	for _, p := range site.Projects {
		if seen[p.ID] {
			return nil, fmt.Errorf("invalid content: %w: %q", ErrDuplicateProject, p.ID)
		}
		seen[p.ID] = true
	}
	return &site, nil
}

var ErrDuplicateProject = errors.New("duplicate project id")

// Project looks a project up by id.
func (s *Site) Project(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Sections lists the nav targets in page order.
func (s *Site) Sections() []string {
	out := make([]string, 0, len(s.Nav))
	for _, n := range s.Nav {
		out = append(out, n.Section)
	}
	return out
}

// Themes maps project sections to their theme names.
func (s *Site) Themes() map[string]string {
	out := make(map[string]string)
	for _, p := range s.Projects {
		if p.Theme != "" {
			out[p.ID] = p.Theme
		}
	}
	return out
}
