package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/schedule"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// DashboardAPI is the slice of the upstream client the doctor dashboard
// reads from.
type DashboardAPI interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
	DoctorAppointments(ctx context.Context, doctorID string) ([]models.DoctorAppointment, error)
}

// DashboardHandler serves the doctor's home screen: the identity card, the
// appointment list, and the per-day availability editor.
type DashboardHandler struct {
	API    DashboardAPI
	Editor *schedule.DayEditor
}

// NewDashboardHandler wires the dashboard endpoints.
func NewDashboardHandler(api DashboardAPI, editor *schedule.DayEditor) *DashboardHandler {
	return &DashboardHandler{API: api, Editor: editor}
}

// doctorCard is the header block of the dashboard.
type doctorCard struct {
	Name          string `json:"name"`
	SpecialtyName string `json:"specialtyName,omitempty"`
	AvatarURL     string `json:"avatarUrl"`
}

// CardHandler handles GET /api/doctor/card. The profile and the specialty
// taxonomy are unrelated reads, so they are fetched concurrently and each
// side degrades on its own: a missing taxonomy just leaves the specialty
// line blank.
func (h *DashboardHandler) CardHandler(c *gin.Context) {
	logger := getLogger(c)
	sess := middleware.SessionFrom(c)
	ctx := c.Request.Context()

	var (
		wg          sync.WaitGroup
		prof        *models.Profile
		profErr     error
		specialties []models.Specialty
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		prof, profErr = h.API.GetProfile(ctx, sess.ID)
	}()
	go func() {
		defer wg.Done()
		var err error
		specialties, err = h.API.Specialties(ctx)
		if err != nil {
			logger.Warn("Specialty list load failed", zap.Error(err))
		}
	}()
	wg.Wait()

	if profErr != nil {
		logger.Warn("Doctor profile load failed", zap.String("doctorId", sess.ID), zap.Error(profErr))
		respondError(c, profErr)
		return
	}

	name := prof.FirstName + " " + prof.LastName
	card := doctorCard{
		Name:      "Dr. " + name,
		AvatarURL: clinicapi.AvatarURL(name),
	}
	for _, sp := range specialties {
		if sp.ID == prof.SpecialtyID {
			card.SpecialtyName = sp.Name
			break
		}
	}
	c.JSON(http.StatusOK, card)
}

// AppointmentsHandler handles GET /api/doctor/appointments.
func (h *DashboardHandler) AppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)
	sess := middleware.SessionFrom(c)

	items, err := h.API.DoctorAppointments(c.Request.Context(), sess.ID)
	if err != nil {
		logger.Warn("Doctor appointment load failed", zap.String("doctorId", sess.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "appointments": items})
}

// dayView is the availability editor's response shape: the full grid plus
// which labels are open.
type dayView struct {
	Date       string   `json:"date"`
	SlotDomain []string `json:"slotDomain"`
	OpenSlots  []string `json:"openSlots"`
}

func viewOfDay(date string, set schedule.SlotSet) dayView {
	return dayView{Date: date, SlotDomain: schedule.SlotDomain(), OpenSlots: set.Labels()}
}

// DayHandler handles GET /api/doctor/availability/:date.
func (h *DashboardHandler) DayHandler(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	date := c.Param("date")

	set, err := h.Editor.Day(c.Request.Context(), sess.ID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfDay(date, set))
}

// ToggleHandler handles PUT /api/doctor/availability/:date/toggle {slot}.
func (h *DashboardHandler) ToggleHandler(c *gin.Context) {
	var req struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	date := c.Param("date")
	set, err := h.Editor.Toggle(c.Request.Context(), sess.ID, date, req.Slot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfDay(date, set))
}

// ClearHandler handles PUT /api/doctor/availability/:date/clear.
func (h *DashboardHandler) ClearHandler(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	date := c.Param("date")
	set, err := h.Editor.Clear(c.Request.Context(), sess.ID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfDay(date, set))
}

// SaveHandler handles POST /api/doctor/availability/:date/save. The working
// set replaces the server's set for the date wholesale.
func (h *DashboardHandler) SaveHandler(c *gin.Context) {
	logger := getLogger(c)
	sess := middleware.SessionFrom(c)
	date := c.Param("date")

	set, err := h.Editor.Save(c.Request.Context(), sess.ID, date)
	if err != nil {
		logger.Warn("Availability save failed",
			zap.String("doctorId", sess.ID),
			zap.String("date", date),
			zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability saved", "day": viewOfDay(date, set)})
}
