package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/services/booking"
	"github.com/Tawatchai-03/clinic-frontend/services/schedule"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// BookingHandler serves the booking screen workflow: open a session for a
// doctor, move the date/slot selection, confirm, abandon.
type BookingHandler struct {
	Bookings *booking.Service
}

// NewBookingHandler wires the booking endpoints.
func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

// bookingView is what every booking endpoint returns: the session plus the
// fixed grid the screen renders it on.
type bookingView struct {
	*booking.Session
	SlotDomain []string `json:"slotDomain"`
}

func viewOf(sess *booking.Session) bookingView {
	return bookingView{Session: sess, SlotDomain: schedule.SlotDomain()}
}

// InitiateHandler handles POST /api/booking/session {doctorId}.
func (h *BookingHandler) InitiateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		DoctorID string `json:"doctorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess := middleware.SessionFrom(c)
	result, err := h.Bookings.Initiate(c.Request.Context(), sess.ID, req.DoctorID)
	if err != nil {
		logger.Warn("Booking session init failed", zap.String("doctorId", req.DoctorID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(result))
}

// GetHandler handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	result, err := h.Bookings.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(result))
}

// SelectDateHandler handles PUT /api/booking/session/:sessionID/date.
// Switching the date always clears the chosen slot.
func (h *BookingHandler) SelectDateHandler(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.Bookings.SelectDate(c.Request.Context(), c.Param("sessionID"), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(result))
}

// SelectSlotHandler handles PUT /api/booking/session/:sessionID/slot.
func (h *BookingHandler) SelectSlotHandler(c *gin.Context) {
	var req struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.Bookings.SelectSlot(c.Request.Context(), c.Param("sessionID"), req.Slot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(result))
}

// ConfirmHandler handles POST /api/booking/session/:sessionID/confirm.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	logger := getLogger(c)

	result, err := h.Bookings.Confirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		logger.Warn("Booking confirm failed", zap.String("sessionID", c.Param("sessionID")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// AbandonHandler handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) AbandonHandler(c *gin.Context) {
	if err := h.Bookings.Abandon(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session closed"})
}
