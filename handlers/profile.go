package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// ProfileHandler serves the profile screen for either role: view, edit, and
// the password change form.
type ProfileHandler struct {
	Profiles *profile.Service
}

// NewProfileHandler wires the profile endpoints.
func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{Profiles: svc}
}

// GetProfileHandler handles GET /api/profile. The backend's role tag on the
// record decides which sections the screen shows, not the session's cache.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	sess := middleware.SessionFrom(c)

	prof, err := h.Profiles.Load(c.Request.Context(), sess.ID)
	if err != nil {
		logger.Warn("Profile load failed", zap.String("userId", sess.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        prof,
		"editableFields": models.RoleProfiles[prof.Role].EditableFields,
	})
}

// UpdateProfileHandler handles PUT /api/profile. Only the editable fields for
// the record's role are written; birth date and gender never are.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.Profiles.Save(c.Request.Context(), sess.ID, sess.Role, update); err != nil {
		logger.Warn("Profile save failed", zap.String("userId", sess.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}

// UpdatePasswordHandler handles PUT /api/profile/password. The form rules run
// locally first; nothing reaches the backend until they pass.
func (h *ProfileHandler) UpdatePasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var pw models.PasswordChange
	if err := c.ShouldBindJSON(&pw); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.Profiles.ChangePassword(c.Request.Context(), sess.ID, pw); err != nil {
		logger.Warn("Password change failed", zap.String("userId", sess.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
