// admin.go - privacy-conscious visitor tracking and admin dashboard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Privacy-conscious visitor tracking struct
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ToggleMetric records one flip of the starfield preference.
type ToggleMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	Shown     bool      `json:"shown"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalToggles     int64           `json:"total_toggles"`
	ToggledOff       int64           `json:"toggled_off"`
	KeyboardToggles  int64           `json:"keyboard_toggles"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	RecentToggles    []ToggleMetric  `json:"recent_toggles"`
}

var adminToken string
var hashingSalt string

// Initialize admin system with privacy considerations
func initAdminToken() {
	adminToken = generateAdminToken()
	hashingSalt = generateAdminToken() // Use for IP hashing

	log.Info("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Debugf("Admin token (dev only): %s", adminToken)
	}

	log.Info("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token", "err", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP)
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

// Middleware to check admin authentication
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPath reports whether visits to path are never recorded.
func untrackedPath(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/api/", "/stars/", "/favicon", "/privacy"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Privacy-conscious visitor tracking middleware
func visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untrackedPath(path) {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		// Track visitor with hashed IP in background
		go trackVisitorPrivacy(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

// Track visitor with privacy protections
func trackVisitorPrivacy(ip, userAgent, path string) {
	_, err := db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashIP(ip), userAgent, path, time.Now())

	if err != nil {
		log.Errorf("Error recording visitor: %v", err)
	}
}

// recordToggle stores a starfield flip; source is "button" or "keyboard".
func recordToggle(ip string, shown bool, source string) {
	_, err := db.Exec(`
		INSERT INTO star_toggles (hashed_ip, shown, source, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashIP(ip), shown, source, time.Now())

	if err != nil {
		log.Errorf("Error recording star toggle: %v", err)
	}
}

// Initialize privacy-conscious visitor and toggle tracking
func initVisitorTracking() error {
	createVisitorTable := `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createVisitorTable); err != nil {
		return err
	}

	createToggleTable := `
	CREATE TABLE IF NOT EXISTS star_toggles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		shown BOOLEAN NOT NULL,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createToggleTable); err != nil {
		return err
	}

	// Clean up old data for privacy compliance (run in background)
	go cleanupOldVisitorData()

	log.Info("Privacy-conscious visitor tracking initialized")
	return nil
}

// Cleanup old visitor and toggle data for privacy compliance
func cleanupOldVisitorData() {
	cutoff := time.Now().AddDate(-1, 0, 0)
	for _, table := range []string{"visitors", "star_toggles"} {
		result, err := db.Exec(`DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			log.Errorf("Error cleaning up old %s data: %v", table, err)
			continue
		}

		rowsDeleted, _ := result.RowsAffected()
		if rowsDeleted > 0 {
			log.Infof("Privacy cleanup: Removed %d %s records older than 12 months", rowsDeleted, table)
		}
	}
}

// Get comprehensive admin statistics
func getAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{startOfDay}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{now.AddDate(0, 0, -7)}},
		{&stats.TotalToggles, "SELECT COUNT(*) FROM star_toggles", nil},
		{&stats.ToggledOff, "SELECT COUNT(*) FROM star_toggles WHERE shown = 0", nil},
		{&stats.KeyboardToggles, "SELECT COUNT(*) FROM star_toggles WHERE source = 'keyboard'", nil},
	}
	for _, q := range counts {
		if err := db.QueryRow(q.query, q.args...).Scan(q.dst); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.RecentVisitors, err = listVisitors(50); err != nil {
		return nil, err
	}
	if stats.RecentToggles, err = listToggles(50); err != nil {
		return nil, err
	}
	return stats, nil
}

func listVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var visitor VisitorMetric
		err := rows.Scan(&visitor.ID, &visitor.HashedIP, &visitor.UserAgent, &visitor.Path, &visitor.Timestamp)
		if err != nil {
			continue
		}
		visitors = append(visitors, visitor)
	}
	return visitors, rows.Err()
}

func listToggles(limit int) ([]ToggleMetric, error) {
	rows, err := db.Query(`
		SELECT id, hashed_ip, shown, source, timestamp
		FROM star_toggles
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var toggles []ToggleMetric
	for rows.Next() {
		var t ToggleMetric
		if err := rows.Scan(&t.ID, &t.HashedIP, &t.Shown, &t.Source, &t.Timestamp); err != nil {
			continue
		}
		toggles = append(toggles, t)
	}
	return toggles, rows.Err()
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, cfg Config) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
		if userOK && passOK {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", adminToken, 3600*24, "/admin", "", false, true)
			log.Infof("Admin login successful from %s", hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Warnf("Failed admin login attempt from %s", hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Infof("Admin logout from %s", hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	// Admin dashboard
	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			log.Errorf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// View visitors
	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := listVisitors(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// View starfield toggles
	adminGroup.GET("/toggles", func(c *gin.Context) {
		toggles, err := listToggles(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load toggles",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-toggles.html", gin.H{
			"toggles": toggles,
		})
	})

	// Privacy compliance endpoint
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Set headers for file download
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")

		log.Infof("Admin stats exported by %s", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
