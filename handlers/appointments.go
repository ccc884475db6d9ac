package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/booking"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// AppointmentsHandler serves the "my appointments" screen: the two-bucket
// list plus the cancel and rebook actions on it.
type AppointmentsHandler struct {
	Bookings *booking.Service
}

// NewAppointmentsHandler wires the appointment list endpoints.
func NewAppointmentsHandler(svc *booking.Service) *AppointmentsHandler {
	return &AppointmentsHandler{Bookings: svc}
}

// listView splits the held list into the buckets the screen renders.
type listView struct {
	ActiveView     string               `json:"activeView"`
	UpcomingCount  int                  `json:"upcomingCount"`
	CancelledCount int                  `json:"cancelledCount"`
	Upcoming       []models.Appointment `json:"upcoming"`
	Cancelled      []models.Appointment `json:"cancelled"`
}

func viewOfList(list *booking.AppointmentList) listView {
	v := listView{
		ActiveView: list.ActiveView,
		Upcoming:   list.Upcoming(),
		Cancelled:  list.Cancelled(),
	}
	if v.Upcoming == nil {
		v.Upcoming = []models.Appointment{}
	}
	if v.Cancelled == nil {
		v.Cancelled = []models.Appointment{}
	}
	v.UpcomingCount = len(v.Upcoming)
	v.CancelledCount = len(v.Cancelled)
	return v
}

// ListHandler handles GET /api/appointments.
func (h *AppointmentsHandler) ListHandler(c *gin.Context) {
	logger := getLogger(c)

	sess := middleware.SessionFrom(c)
	list, err := h.Bookings.List(c.Request.Context(), sess.ID)
	if err != nil {
		logger.Warn("Appointment list load failed", zap.String("patientId", sess.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfList(list))
}

// SetViewHandler handles PUT /api/appointments/view {view}.
func (h *AppointmentsHandler) SetViewHandler(c *gin.Context) {
	var req struct {
		View string `json:"view" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	list, err := h.Bookings.SetView(c.Request.Context(), sess.ID, req.View)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfList(list))
}

// CancelHandler handles POST /api/appointments/:appointmentID/cancel.
// The confirmed flag is the user's dialog answer passed through; a request
// without it is rejected before anything reaches the backend.
func (h *AppointmentsHandler) CancelHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	list, err := h.Bookings.Cancel(c.Request.Context(), sess.ID, c.Param("appointmentID"), req.Confirmed)
	if err != nil {
		logger.Warn("Appointment cancel failed",
			zap.String("appointmentId", c.Param("appointmentID")),
			zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfList(list))
}

// RebookHandler handles POST /api/appointments/:appointmentID/rebook.
func (h *AppointmentsHandler) RebookHandler(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	target, err := h.Bookings.Rebook(c.Request.Context(), sess.ID, c.Param("appointmentID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}
