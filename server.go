package main

import (
	"bytes"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kelwa413/portfolio/internal/carousel"
	"github.com/kelwa413/portfolio/internal/config"
	"github.com/kelwa413/portfolio/internal/content"
	"github.com/kelwa413/portfolio/internal/modal"
	"github.com/kelwa413/portfolio/internal/session"
	"github.com/kelwa413/portfolio/internal/store"
	"github.com/kelwa413/portfolio/internal/viewport"
)

const sessionCookie = "sid"

type server struct {
	cfg    config.Config
	site   *content.Site
	hub    *session.Hub
	store  *store.Store
	mailer mailer
	admin  *admin
	log    *slog.Logger
}

func newServer(cfg config.Config, site *content.Site, hub *session.Hub, db *store.Store, m mailer, log *slog.Logger) *server {
	return &server{
		cfg:    cfg,
		site:   site,
		hub:    hub,
		store:  db,
		mailer: m,
		admin:  newAdmin(cfg, db, log),
		log:    log,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/media", "./media")
	r.Static("/static", "./static")

	r.Use(s.admin.visitorTrackingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.mountSession(), s.home)

	page := r.Group("/", s.requireSession())

	slides := page.Group("/carousel/:id", s.carouselMiddleware())
	slides.POST("/next", s.carouselNav("next", (*carousel.Carousel).Next))
	slides.POST("/prev", s.carouselNav("prev", (*carousel.Carousel).Prev))
	slides.POST("/goto/:n", s.carouselGoTo)
	slides.POST("/pause", s.carouselPointer((*carousel.Carousel).PointerEnter))
	slides.POST("/resume", s.carouselPointer((*carousel.Carousel).PointerLeave))
	slides.GET("/stream", s.carouselStream)

	page.GET("/modal/:id", s.openModal)
	page.POST("/modal/close", s.closeModal)
	page.POST("/modal/key", s.modalKey)

	page.POST("/viewport", s.viewport)

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.contact)

	s.admin.setupRoutes(r)
	return r
}

// mountSession attaches the visitor's session, mounting a new one when the
// cookie is missing or stale. Only the page itself mounts sessions.
func (s *server) mountSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess := s.hub.Get(id)
		s.setSessionCookie(c, sess.ID)
		c.Set("session", sess)
		c.Next()
	}
}

// requireSession attaches an existing session. Fragment requests without one
// get 410 and an HX-Refresh so the browser reloads the page and mounts anew.
func (s *server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess, ok := s.hub.Lookup(id)
		if !ok {
			c.Header("HX-Refresh", "true")
			c.AbortWithStatus(http.StatusGone)
			return
		}
		s.setSessionCookie(c, sess.ID)
		c.Set("session", sess)
		c.Next()
	}
}

// setSessionCookie re-issues the cookie on every request so that it expires
// together with the idle session, not a fixed time after mounting.
func (s *server) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.cfg.SessionIdle.Seconds()), "/", "", false, true)
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

type projectCard struct {
	content.Project
	Carousel template.HTML
}

type navLink struct {
	Section string
	Label   string
	Active  bool
}

type navView struct {
	Owner string
	Theme string
	Links []navLink
}

func (s *server) navView(sess *session.Session) navView {
	active := sess.Spy.Active()
	v := navView{Owner: s.site.Owner, Theme: sess.Themes.Current()}
	for _, n := range s.site.Nav {
		v.Links = append(v.Links, navLink{Section: n.Section, Label: n.Label, Active: n.Section == active})
	}
	return v
}

func (s *server) home(c *gin.Context) {
	sess := currentSession(c)

	cards := make([]projectCard, 0, len(s.site.Projects))
	for _, p := range s.site.Projects {
		card := projectCard{Project: p}
		if car, ok := sess.Carousel(p.ID); ok {
			var buf bytes.Buffer
			if err := car.Render(&buf); err != nil {
				s.log.Error("render carousel", "project", p.ID, "err", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			card.Carousel = template.HTML(buf.String())
		}
		cards = append(cards, card)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":      s.site,
		"projects":  cards,
		"nav":       s.navView(sess),
		"modal":     s.modalView(sess),
		"bodyClass": sess.Document.Classes(),
		"year":      time.Now().Year(),
	})
}

func (s *server) carouselMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		car, ok := currentSession(c).Carousel(c.Param("id"))
		if !ok {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Set("carousel", car)
		c.Next()
	}
}

func currentCarousel(c *gin.Context) *carousel.Carousel {
	return c.MustGet("carousel").(*carousel.Carousel)
}

func (s *server) carouselNav(action string, move func(*carousel.Carousel)) gin.HandlerFunc {
	return func(c *gin.Context) {
		car := currentCarousel(c)
		move(car)
		s.recordSlideEvent(c, car.ID(), action)
		s.writeTrack(c, car)
	}
}

func (s *server) carouselGoTo(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.String(http.StatusBadRequest, "slide position must be an integer")
		return
	}
	car := currentCarousel(c)
	car.GoTo(n)
	s.recordSlideEvent(c, car.ID(), "goto")
	s.writeTrack(c, car)
}

func (s *server) carouselPointer(apply func(*carousel.Carousel)) gin.HandlerFunc {
	return func(c *gin.Context) {
		apply(currentCarousel(c))
		c.Status(http.StatusNoContent)
	}
}

// carouselStream pushes the slide track over SSE after every change,
// starting with the current one.
func (s *server) carouselStream(c *gin.Context) {
	car := currentCarousel(c)
	updates, cancel := car.Subscribe()
	defer cancel()

	if !s.sendTrack(c, car) {
		return
	}
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case _, ok := <-updates:
			if !ok {
				return false
			}
			return s.sendTrack(c, car)
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *server) sendTrack(c *gin.Context, car *carousel.Carousel) bool {
	var buf bytes.Buffer
	if err := car.RenderTrack(&buf); err != nil {
		s.log.Error("render carousel track", "project", car.ID(), "err", err)
		return false
	}
	c.SSEvent("slide", buf.String())
	return true
}

func (s *server) writeTrack(c *gin.Context, car *carousel.Carousel) {
	var buf bytes.Buffer
	if err := car.RenderTrack(&buf); err != nil {
		s.log.Error("render carousel track", "project", car.ID(), "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *server) recordSlideEvent(c *gin.Context, project, action string) {
	if err := s.store.RecordSlideEvent(c.Request.Context(), project, action, time.Now()); err != nil {
		s.log.Warn("slide event not recorded", "project", project, "action", action, "err", err)
	}
}

type modalView struct {
	modal.View
	Project content.Project
}

func (s *server) modalView(sess *session.Session) modalView {
	v := modalView{View: sess.Modal.View()}
	if v.Open {
		v.Project, _ = s.site.Project(v.Target)
	}
	return v
}

func (s *server) openModal(c *gin.Context) {
	if _, ok := s.site.Project(c.Param("id")); !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	sess := currentSession(c)
	sess.Modal.Open(c.Param("id"), c.Query("variant"))

	c.Header("HX-Trigger", "scroll-lock")
	c.HTML(http.StatusOK, "modal.html", s.modalView(sess))
}

func (s *server) closeModal(c *gin.Context) {
	currentSession(c).Modal.Close()
	c.Header("HX-Trigger", "scroll-unlock")
	c.Status(http.StatusOK)
}

func (s *server) modalKey(c *gin.Context) {
	if !currentSession(c).Modal.Key(c.PostForm("key")) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("HX-Trigger", "scroll-unlock")
	c.Status(http.StatusOK)
}

func (s *server) viewport(c *gin.Context) {
	var batch viewport.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	sess := currentSession(c)
	sess.Spy.Update(batch.Entries...)
	sess.Themes.Update(batch.Entries...)
	c.HTML(http.StatusOK, "nav.html", s.navView(sess))
}

// contact handles the contact form submission with HTMX.
func (s *server) contact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	if err := s.mailer.Send(form.FullName, form.Email, form.Message); err != nil {
		s.log.Error("sending contact email", "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
