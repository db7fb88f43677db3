package carousel

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/samber/lo"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Slide is one rendered image.
type Slide struct {
	Src      string
	Position int
	Active   bool
}

// Dot is one position indicator button.
type Dot struct {
	Position int
	Label    string
	Active   bool
}

// View is the render model of a Carousel.
type View struct {
	ID        string
	Endpoint  string
	Slides    []Slide
	Controls  bool
	PrevLabel string
	NextLabel string
	Dots      []Dot
}

// View builds the render model from the current state. Controls and dots are
// only present when enabled and there is more than one slide.
func (c *Carousel) View() View {
	st := c.State()
	v := View{
		ID:       c.id,
		Endpoint: "/carousel/" + c.id,
		Slides: lo.Map(c.images, func(src string, i int) Slide {
			return Slide{Src: src, Position: i, Active: i == st.Index}
		}),
	}
	if !c.controls || len(c.images) <= 1 {
		return v
	}
	v.Controls = true
	v.PrevLabel = "Previous slide"
	v.NextLabel = "Next slide"
	v.Dots = lo.Times(len(c.images), func(i int) Dot {
		return Dot{Position: i, Label: fmt.Sprintf("Go to slide %d", i+1), Active: i == st.Index}
	})
	return v
}

// Render writes the whole widget, including the SSE connection and the
// pointer enter/leave hooks.
func (c *Carousel) Render(w io.Writer) error {
	return tmpl.ExecuteTemplate(w, "carousel", c.View())
}

// RenderTrack writes only the slides and controls, the part that is swapped
// on every change.
func (c *Carousel) RenderTrack(w io.Writer) error {
	return tmpl.ExecuteTemplate(w, "carousel-track", c.View())
}
