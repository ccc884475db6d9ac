package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
	"github.com/Tawatchai-03/clinic-frontend/services/session"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// tokenLifetime matches the session store's idle TTL.
const tokenLifetime = 24 * time.Hour

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	API      *clinicapi.Client
	Profiles *profile.Service
	Sessions *session.Store
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(api *clinicapi.Client, profiles *profile.Service, sessions *session.Store) *AuthHandler {
	return &AuthHandler{API: api, Profiles: profiles, Sessions: sessions}
}

// RegisterHandler handles POST /api/register for either role.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if req.Role == "" {
		req.Role = models.RolePatient
	}

	if err := h.Profiles.Register(c.Request.Context(), req); err != nil {
		logger.Warn("Registration failed", zap.String("role", string(req.Role)), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "account created, please log in",
		"redirect": "/login",
	})
}

// LoginHandler authenticates against the backend, creates the local
// session, and reports the role-appropriate landing screen.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.API.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	sess := models.Session{
		ID:        result.ID.String(),
		Role:      models.Role(result.Role),
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Email:     result.Email,
		Token:     result.Token,
	}

	sid := uuid.NewString()
	if err := h.Sessions.Save(sid, sess); err != nil {
		logger.Error("Failed to persist session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed, please try again", "")
		return
	}

	token, err := utils.GenerateToken(sess.ID, sid, tokenLifetime)
	if err != nil {
		logger.Error("Failed to mint session token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed, please try again", "")
		return
	}

	redirect := "/search"
	if rp, ok := models.RoleProfiles[sess.Role]; ok {
		redirect = rp.LandingScreen
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  sess,
		"token":    token,
		"redirect": redirect,
	})
}

// LogoutHandler clears the session. Logout of an expired session succeeds.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sid, ok := c.Get(middleware.ContextSessionID)
	if ok {
		if err := h.Sessions.Clear(sid.(string)); err != nil {
			getLogger(c).Warn("Failed to clear session", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out", "redirect": "/"})
}

// MeHandler returns the session behind the current token.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		utils.JSONError(c, http.StatusUnauthorized, "please log in", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}
