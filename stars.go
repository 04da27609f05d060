package main

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/starfield"
)

const starsCookieMaxAge = 365 * 24 * 3600

// cookieStore keeps the show-stars flag in the visitor's browser.
type cookieStore struct {
	c *gin.Context
}

func (s cookieStore) Get(key string) (string, bool, error) {
	v, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s cookieStore) Set(key, value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, starsCookieMaxAge, "/", "", false, true)
	return nil
}

// pageStore reads the state the page is currently showing, as posted in the
// "show" form field, and writes through to the cookie. The cookie is only
// consulted when the page did not say.
type pageStore struct {
	posted string
	cookie cookieStore
}

func (s pageStore) Get(key string) (string, bool, error) {
	if s.posted == "1" || s.posted == "0" {
		return s.posted, true, nil
	}
	return s.cookie.Get(key)
}

func (s pageStore) Set(key, value string) error {
	return s.cookie.Set(key, value)
}

var (
	_ starfield.Store = cookieStore{}
	_ starfield.Store = pageStore{}
)

// starsView is the data behind the "stars" template.
type starsView struct {
	Show   bool              `json:"show"`
	Label  string            `json:"label"`
	Layers []starfield.Layer `json:"layers"`
	OOB    bool              `json:"-"`
}

func newStarsView(ctrl *starfield.Controller) starsView {
	return starsView{
		Show:   ctrl.On(),
		Label:  ctrl.Label(),
		Layers: ctrl.Background(),
	}
}

type starsHandler struct {
	layers []starfield.LayerSpec
	logger *log.Logger
}

func (h starsHandler) controller(store starfield.Store) *starfield.Controller {
	return starfield.NewController(store, h.logger, starfield.WithLayers(h.layers))
}

// toggleSource normalizes the posted source to "keyboard" or "button".
func toggleSource(s string) string {
	if s == "keyboard" {
		return "keyboard"
	}
	return "button"
}

// toggle flips the state the page is showing and returns the background
// fragment with an out-of-band swap for the header button.
func (h starsHandler) toggle(c *gin.Context) {
	ctrl := h.controller(pageStore{posted: c.PostForm("show"), cookie: cookieStore{c}})

	ip, source := c.ClientIP(), toggleSource(c.PostForm("source"))
	ctrl.OnChange(func(on bool) {
		go recordToggle(ip, on, source)
	})
	ctrl.Toggle()

	view := newStarsView(ctrl)
	view.OOB = true
	c.HTML(http.StatusOK, "stars.html", view)
}

func (h starsHandler) api(c *gin.Context) {
	view := newStarsView(h.controller(cookieStore{c}))
	if view.Layers == nil {
		view.Layers = []starfield.Layer{}
	}
	c.JSON(http.StatusOK, view)
}
