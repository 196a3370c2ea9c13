// Package auth implements the registration-free identity flow: a
// login creates or refreshes the user record, and the configured admin
// employee id grants admin capability.
package auth

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/snapvote/snapvote/internal/api/models"
	"github.com/snapvote/snapvote/internal/config"
	"github.com/snapvote/snapvote/internal/database"
)

// Session keys.
const (
	sessionKeyEmployeeID = "employee_id"
	sessionKeyName       = "user_name"
	sessionKeyPosting    = "user_posting"
	sessionKeyIsAdmin    = "user_is_admin"
)

// Service handles login, logout and the session middleware.
type Service struct {
	cfg *config.Config
	db  database.DB
}

func New(cfg *config.Config, db database.DB) *Service {
	return &Service{cfg: cfg, db: db}
}

// IsAdminIdentity reports whether the employee id designates the
// administrator. The comparison is case-insensitive.
func (s *Service) IsAdminIdentity(employeeID string) bool {
	return database.NormalizeEmployeeID(employeeID) == s.cfg.AdminEmployeeID
}

// Login creates or refreshes the user record and establishes the
// session. Admin capability is derived here, once, and stored in the
// session; handlers never re-derive it.
func (s *Service) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId and name are required"})
		return
	}

	isAdmin := s.IsAdminIdentity(req.EmployeeID)

	user, err := s.db.UpsertUser(c.Request.Context(), req.EmployeeID, req.Name, req.PostingDetails, isAdmin)
	if err != nil {
		log.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyEmployeeID, user.EmployeeID)
	session.Set(sessionKeyName, user.Name)
	session.Set(sessionKeyPosting, user.PostingDetails)
	session.Set(sessionKeyIsAdmin, user.IsAdmin)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, models.User{
		EmployeeID:     user.EmployeeID,
		Name:           user.Name,
		PostingDetails: user.PostingDetails,
		IsAdmin:        user.IsAdmin,
	})
}

// Logout clears the session.
func (s *Service) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// EnsureAdminUser auto-provisions the configured admin identity if it
// does not yet exist in the user store.
func (s *Service) EnsureAdminUser(ctx context.Context) error {
	_, err := s.db.GetUserByEmployeeID(ctx, s.cfg.AdminEmployeeID)
	if err == nil {
		return nil
	}
	_, err = s.db.UpsertUser(ctx, s.cfg.AdminEmployeeID, "Contest Admin", "", true)
	return err
}

// RequireAuth rejects unauthenticated requests and attaches the
// session user to the context.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		employeeID := session.Get(sessionKeyEmployeeID)
		if employeeID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		user := &models.User{
			EmployeeID: employeeID.(string),
		}
		if name, ok := session.Get(sessionKeyName).(string); ok {
			user.Name = name
		}
		if posting, ok := session.Get(sessionKeyPosting).(string); ok {
			user.PostingDetails = posting
		}
		if isAdmin, ok := session.Get(sessionKeyIsAdmin).(bool); ok {
			user.IsAdmin = isAdmin
		}

		c.Set("user", user)
	}
}

// RequireAdmin silently declines non-admin access to admin actions.
// The action is simply not performed; no state changes.
func (s *Service) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet("user").(*models.User)
		if !ok || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the session user attached by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}
