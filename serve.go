package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/daebeom/macfolio/internal/config"
	"github.com/daebeom/macfolio/internal/terminal"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

type server struct {
	cfg        config.Config
	script     terminal.Script
	stats      *RunStats
	adminToken string
	log        pslog.Logger
	started    time.Time
}

func newServer(cfg config.Config, script terminal.Script, log pslog.Logger) *server {
	return &server{
		cfg:        cfg,
		script:     script,
		stats:      &RunStats{},
		adminToken: initAdminToken(cfg.Admin.Token, log),
		log:        log,
		started:    time.Now(),
	}
}

type contactForm struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Message  string `form:"message" binding:"required"`
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.log), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	if dir := s.cfg.HTTP.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/static", dir)
		}
	}

	// Desktop with boot screen and dock
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "desktop.html", gin.H{
			"profileName":  ProfileName,
			"profileTitle": ProfileTitle,
			"apps":         Apps,
			"now":          time.Now().Format(time.RFC3339),
		})
	})

	// HTMX app windows
	r.GET("/apps/:app", s.appWindow)

	// Contact form: acknowledged only, nothing is sent
	r.POST("/contact", func(c *gin.Context) {
		var form contactForm
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Please fill in your name, a valid email address and a message.",
			})
			return
		}
		s.log.Info("contact form received", "name", form.FullName, "message_len", len(form.Message))
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "I'll get back to you as soon as possible.",
		})
	})

	r.GET("/terminal/stream", s.streamTerminal)
	r.GET("/terminal/script", s.terminalScript)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)
	return r
}

func (s *server) appWindow(c *gin.Context) {
	app, ok := findApp(c.Param("app"))
	if !ok {
		c.String(http.StatusNotFound, "unknown app %q", c.Param("app"))
		return
	}

	switch app.ID {
	case "terminal":
		c.HTML(http.StatusOK, "terminal.html", gin.H{
			"title":     "zsh — ~/portfolio",
			"streamURL": "/terminal/stream",
		})
	case "safari":
		c.HTML(http.StatusOK, "safari.html", gin.H{
			"url":          ProfileURL,
			"name":         ProfileName,
			"title":        ProfileTitle,
			"tagline":      ProfileTagline,
			"timeline":     Timeline,
			"competencies": Competencies,
		})
	case "finder":
		selected := c.DefaultQuery("category", CategoryAll)
		c.HTML(http.StatusOK, "finder.html", gin.H{
			"categories": ProjectCategories,
			"selected":   selected,
			"projects":   FilterProjects(selected),
		})
	case "settings":
		c.HTML(http.StatusOK, "settings.html", gin.H{
			"categories": SkillCategories,
			"selected":   FindSkillCategory(c.Query("category")),
		})
	case "contacts":
		c.HTML(http.StatusOK, "contacts.html", gin.H{
			"name":     ProfileName,
			"title":    ProfileTitle,
			"contacts": Contacts,
		})
	}
}

func requestLogger(log pslog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(pslog.ContextWithLogger(c.Request.Context(), log))
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio desktop over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	log := pslog.Ctx(ctx)
	script, err := cfg.LoadScript()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.HTTP.Mode)

	srv := newServer(cfg, script, log)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", "addr", cfg.HTTP.Addr, "script_lines", len(script.Lines), "char_interval", cfg.Terminal.CharInterval)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", cfg.HTTP.Addr, err)
	case <-ctx.Done():
		log.Info("http shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
