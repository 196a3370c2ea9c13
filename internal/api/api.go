// Package api assembles the HTTP server: session middleware, auth
// routes, the user API and the admin API.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/snapvote/snapvote/internal/api/auth"
	"github.com/snapvote/snapvote/internal/api/handler"
	"github.com/snapvote/snapvote/internal/config"
	"github.com/snapvote/snapvote/internal/contest"
	"github.com/snapvote/snapvote/internal/database"
)

type Server struct {
	cfg         *config.Config
	ginEngine   *gin.Engine
	engine      *contest.Engine
	authService *auth.Service
}

func New(ctx context.Context, cfg *config.Config, db database.DB, engine *contest.Engine, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := auth.New(cfg, db)
	if err := authService.EnsureAdminUser(ctx); err != nil {
		return nil, fmt.Errorf("failed to provision admin user: %w", err)
	}

	return &Server{
		cfg:         cfg,
		ginEngine:   gin.Default(),
		engine:      engine,
		authService: authService,
	}, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("snapvote_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	h := handler.New(s.engine)

	s.ginEngine.POST("/auth/login", s.authService.Login)
	s.ginEngine.POST("/auth/logout", s.authService.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authService.RequireAuth())

	api := protected.Group("/api")
	api.GET("/state", h.State)
	api.GET("/themes", h.Themes)
	api.GET("/gallery", h.Gallery)
	api.GET("/photos/mine", h.MyPhotos)
	api.POST("/photos", h.SubmitPhoto)
	api.GET("/photos/:id/image", h.Image)
	api.POST("/votes", h.Vote)
	api.GET("/votes/mine", h.MyVote)
	api.GET("/leaderboard", h.Leaderboard)

	admin := s.ginEngine.Group("/admin")
	admin.Use(s.authService.RequireAuth(), s.authService.RequireAdmin())
	admin.GET("/dashboard", h.AdminDashboard)
	admin.GET("/photos", h.AdminPhotos)
	admin.POST("/photos/:id/approve", h.ApprovePhoto)
	admin.POST("/photos/:id/reject", h.RejectPhoto)
	admin.DELETE("/photos/:id", h.DeletePhoto)
	admin.POST("/phase/voting/enable", h.EnableVoting)
	admin.POST("/phase/voting/disable", h.DisableVoting)
	admin.POST("/phase/voting/end", h.EndVoting)
	admin.POST("/phase/reset", h.ResetContest)
	admin.GET("/leaderboard", h.AdminLeaderboard)
}

func (s *Server) Run() error {
	s.setupRoutes()
	return s.ginEngine.Run(s.cfg.Listen)
}
