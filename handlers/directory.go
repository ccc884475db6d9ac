package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/directory"
)

// DirectoryHandler serves the doctor search screen and the specialty
// taxonomy.
type DirectoryHandler struct {
	Directory *directory.Service
}

// NewDirectoryHandler wires the directory endpoints.
func NewDirectoryHandler(svc *directory.Service) *DirectoryHandler {
	return &DirectoryHandler{Directory: svc}
}

// SearchDoctorsHandler handles GET /api/doctors?q=&specialtyId=&sort=.
func (h *DirectoryHandler) SearchDoctorsHandler(c *gin.Context) {
	logger := getLogger(c)

	order := models.DoctorSort(c.DefaultQuery("sort", string(models.SortNameAsc)))
	results, err := h.Directory.Search(c.Request.Context(), c.Query("q"), c.Query("specialtyId"), order)
	if err != nil {
		logger.Warn("Doctor search failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "doctors": results})
}

// GetDoctorHandler handles GET /api/doctors/:id.
func (h *DirectoryHandler) GetDoctorHandler(c *gin.Context) {
	logger := getLogger(c)

	doctor, err := h.Directory.Doctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Warn("Doctor lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// ListSpecialtiesHandler handles GET /api/specialties.
func (h *DirectoryHandler) ListSpecialtiesHandler(c *gin.Context) {
	logger := getLogger(c)

	specialties, err := h.Directory.Specialties(c.Request.Context())
	if err != nil {
		logger.Warn("Specialty load failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, specialties)
}
