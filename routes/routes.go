package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Tawatchai-03/clinic-frontend/handlers"
	"github.com/Tawatchai-03/clinic-frontend/middleware"
	"github.com/Tawatchai-03/clinic-frontend/models"
)

// RegisterAuthRoutes registers registration, login, and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (require a live session)
		api.Use(middleware.RequireSession(hb.Sessions))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterDirectoryRoutes registers the doctor search screen. Search is a
// patient-only screen.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.Use(middleware.RequireRole(hb.Sessions, models.RolePatient))
		api.GET("", hb.SearchDoctorsHandler)
		api.GET("/:id", hb.GetDoctorHandler)
	}

	// The specialty taxonomy also feeds the registration form, so it stays
	// public.
	r.GET("/api/specialties", hb.ListSpecialtiesHandler)
}

// RegisterBookingRoutes sets up the booking screen endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.RequireRole(hb.Sessions, models.RolePatient))
		bookingGroup.POST("/session", hb.InitiateBookingHandler)
		bookingGroup.GET("/session/:sessionID", hb.GetBookingHandler)
		bookingGroup.PUT("/session/:sessionID/date", hb.SelectDateHandler)
		bookingGroup.PUT("/session/:sessionID/slot", hb.SelectSlotHandler)
		bookingGroup.POST("/session/:sessionID/confirm", hb.ConfirmBookingHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.AbandonBookingHandler)
	}
}

// RegisterAppointmentRoutes sets up the "my appointments" screen endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.RequireRole(hb.Sessions, models.RolePatient))
		api.GET("", hb.ListAppointmentsHandler)
		api.PUT("/view", hb.SetViewHandler)
		api.POST("/:appointmentID/cancel", hb.CancelHandler)
		api.POST("/:appointmentID/rebook", hb.RebookHandler)
	}
}

// RegisterDoctorRoutes sets up the doctor dashboard endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.Use(middleware.RequireRole(hb.Sessions, models.RoleDoctor))
		api.GET("/card", hb.DoctorCardHandler)
		api.GET("/appointments", hb.DoctorAppointmentsHandler)
		api.GET("/availability/:date", hb.DayHandler)
		api.PUT("/availability/:date/toggle", hb.ToggleSlotHandler)
		api.PUT("/availability/:date/clear", hb.ClearDayHandler)
		api.POST("/availability/:date/save", hb.SaveDayHandler)
	}
}

// RegisterProfileRoutes sets up the profile screen, open to either role.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.RequireSession(hb.Sessions))
		api.GET("", hb.GetProfileHandler)
		api.PUT("", hb.UpdateProfileHandler)
		api.PUT("/password", hb.UpdatePasswordHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CliniCare"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterHealthRoute(r)
}
