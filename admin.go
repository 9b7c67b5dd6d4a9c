// admin.go - in-memory run statistics behind a token
package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"pkt.systems/pslog"

	"github.com/daebeom/macfolio/internal/terminal"
)

// RunStats counts terminal runs by outcome. Nothing is persisted.
type RunStats struct {
	started   atomic.Int64
	completed atomic.Int64
	cancelled atomic.Int64
	lastRun   atomic.Int64 // unix nanos
}

type AdminStats struct {
	RunsStarted   int64      `json:"runs_started"`
	RunsCompleted int64      `json:"runs_completed"`
	RunsCancelled int64      `json:"runs_cancelled"`
	RunsActive    int64      `json:"runs_active"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	ScriptLines   int        `json:"script_lines"`
	Uptime        string     `json:"uptime"`
}

func (r *RunStats) runStarted() {
	r.started.Add(1)
	r.lastRun.Store(time.Now().UnixNano())
}

func (r *RunStats) runFinished(state terminal.State) {
	switch state {
	case terminal.Completed:
		r.completed.Add(1)
	case terminal.Cancelled:
		r.cancelled.Add(1)
	}
}

// Snapshot reads the counters.
func (r *RunStats) Snapshot() AdminStats {
	stats := AdminStats{
		RunsStarted:   r.started.Load(),
		RunsCompleted: r.completed.Load(),
		RunsCancelled: r.cancelled.Load(),
	}
	stats.RunsActive = stats.RunsStarted - stats.RunsCompleted - stats.RunsCancelled
	if ns := r.lastRun.Load(); ns != 0 {
		t := time.Unix(0, ns).UTC()
		stats.LastRunAt = &t
	}
	return stats
}

// Initialize the admin token, generating one when none is configured
func initAdminToken(configured string, log pslog.Logger) string {
	if configured != "" {
		return configured
	}
	token := generateAdminToken()
	log.Info("admin stats available at /admin/api/stats")
	if gin.Mode() == gin.DebugMode {
		log.Info("admin token (dev only)", "token", token)
	}
	return token
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("generate admin token: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// Middleware to check admin authentication
func adminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token, _ = c.Cookie("admin_token")
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *server) adminStats() AdminStats {
	stats := s.stats.Snapshot()
	stats.ScriptLines = len(s.script.Lines)
	stats.Uptime = time.Since(s.started).Round(time.Second).String()
	return stats
}

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware(s.adminToken))

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.adminStats())
	})

	// Statistics export as a file download
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=terminal-stats.json")
		s.log.Info("admin stats exported", "remote", c.ClientIP())
		c.JSON(http.StatusOK, s.adminStats())
	})
}
