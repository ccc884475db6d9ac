package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/services/booking"
	"github.com/Tawatchai-03/clinic-frontend/services/directory"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
	"github.com/Tawatchai-03/clinic-frontend/services/schedule"
	"github.com/Tawatchai-03/clinic-frontend/services/session"
)

// HandlerBundle aggregates every endpoint handler plus the session store the
// route guards read from.
type HandlerBundle struct {
	Sessions *session.Store

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	MeHandler       gin.HandlerFunc

	// Directory endpoints
	SearchDoctorsHandler   gin.HandlerFunc
	GetDoctorHandler       gin.HandlerFunc
	ListSpecialtiesHandler gin.HandlerFunc

	// Booking screen endpoints
	InitiateBookingHandler gin.HandlerFunc
	GetBookingHandler      gin.HandlerFunc
	SelectDateHandler      gin.HandlerFunc
	SelectSlotHandler      gin.HandlerFunc
	ConfirmBookingHandler  gin.HandlerFunc
	AbandonBookingHandler  gin.HandlerFunc

	// My-appointments endpoints
	ListAppointmentsHandler gin.HandlerFunc
	SetViewHandler          gin.HandlerFunc
	CancelHandler           gin.HandlerFunc
	RebookHandler           gin.HandlerFunc

	// Doctor dashboard endpoints
	DoctorCardHandler         gin.HandlerFunc
	DoctorAppointmentsHandler gin.HandlerFunc
	DayHandler                gin.HandlerFunc
	ToggleSlotHandler         gin.HandlerFunc
	ClearDayHandler           gin.HandlerFunc
	SaveDayHandler            gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	UpdatePasswordHandler gin.HandlerFunc
}

// NewHandlerBundle builds the full endpoint surface from the wired services.
func NewHandlerBundle(
	api *clinicapi.Client,
	sessions *session.Store,
	bookings *booking.Service,
	dir *directory.Service,
	profiles *profile.Service,
	editor *schedule.DayEditor,
) *HandlerBundle {
	auth := NewAuthHandler(api, profiles, sessions)
	directoryH := NewDirectoryHandler(dir)
	bookingH := NewBookingHandler(bookings)
	apptsH := NewAppointmentsHandler(bookings)
	dashH := NewDashboardHandler(api, editor)
	profileH := NewProfileHandler(profiles)

	return &HandlerBundle{
		Sessions: sessions,

		RegisterHandler: auth.RegisterHandler,
		LoginHandler:    auth.LoginHandler,
		LogoutHandler:   auth.LogoutHandler,
		MeHandler:       auth.MeHandler,

		SearchDoctorsHandler:   directoryH.SearchDoctorsHandler,
		GetDoctorHandler:       directoryH.GetDoctorHandler,
		ListSpecialtiesHandler: directoryH.ListSpecialtiesHandler,

		InitiateBookingHandler: bookingH.InitiateHandler,
		GetBookingHandler:      bookingH.GetHandler,
		SelectDateHandler:      bookingH.SelectDateHandler,
		SelectSlotHandler:      bookingH.SelectSlotHandler,
		ConfirmBookingHandler:  bookingH.ConfirmHandler,
		AbandonBookingHandler:  bookingH.AbandonHandler,

		ListAppointmentsHandler: apptsH.ListHandler,
		SetViewHandler:          apptsH.SetViewHandler,
		CancelHandler:           apptsH.CancelHandler,
		RebookHandler:           apptsH.RebookHandler,

		DoctorCardHandler:         dashH.CardHandler,
		DoctorAppointmentsHandler: dashH.AppointmentsHandler,
		DayHandler:                dashH.DayHandler,
		ToggleSlotHandler:         dashH.ToggleHandler,
		ClearDayHandler:           dashH.ClearHandler,
		SaveDayHandler:            dashH.SaveHandler,

		GetProfileHandler:     profileH.GetProfileHandler,
		UpdateProfileHandler:  profileH.UpdateProfileHandler,
		UpdatePasswordHandler: profileH.UpdatePasswordHandler,
	}
}
