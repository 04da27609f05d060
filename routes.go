package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/starfield"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"fixed2": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

// requestLogger tags every request with an ID and logs its outcome.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.Debug("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start).Round(time.Microsecond),
		)
	}
}

func mailto(address, subject string) string {
	u := url.URL{Scheme: "mailto", Opaque: address}
	if subject != "" {
		u.RawQuery = url.Values{"subject": {subject}}.Encode()
	}
	return u.String()
}

func setupRouter(cfg Config, layers []starfield.LayerSpec, logger *log.Logger) (*gin.Engine, error) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), visitorTrackingMiddleware())
	r.SetHTMLTemplate(loadTemplates())
	r.StaticFS("/static", http.FS(static))

	stars := starsHandler{layers: layers, logger: logger}
	contact := gin.H{
		"contactEmail": cfg.ContactEmail,
		"mailto":       template.URL(mailto(cfg.ContactEmail, "Portfolio contact")),
	}

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"name":     Name,
			"about":    AboutMe,
			"skills":   Skills,
			"projects": Projects,
			"github":   GitHubURL,
			"linkedin": LinkedInURL,
			"contact":  contact,
			"stars":    newStarsView(stars.controller(cookieStore{c})),
		})
	})

	// HTMX contact form fragment
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", contact)
	})

	r.POST("/stars/toggle", stars.toggle)
	r.GET("/api/stars", stars.api)

	setupAdminRoutes(r, cfg)
	return r, nil
}
