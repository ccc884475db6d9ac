package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/services/booking"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)
	return w
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "local validation",
			err:        &profile.ValidationError{Message: "postal code must be exactly 5 digits"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "postal code",
		},
		{
			name:       "not logged in",
			err:        booking.ErrNotLoggedIn,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "please log in",
		},
		{
			name:       "booking session expired",
			err:        booking.ErrSessionNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "booking session",
		},
		{
			name:       "slot closed",
			err:        booking.ErrSlotClosed,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "not available",
		},
		{
			name:       "cancel without confirmation",
			err:        booking.ErrConfirmationRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   "confirmation",
		},
		{
			name:       "upstream refusal keeps status and message",
			err:        &clinicapi.APIError{Status: http.StatusConflict, Message: "slot already booked"},
			wantStatus: http.StatusConflict,
			wantBody:   "slot already booked",
		},
		{
			name:       "upstream failure without message",
			err:        &clinicapi.APIError{Status: http.StatusInternalServerError},
			wantStatus: http.StatusInternalServerError,
			wantBody:   genericFailure,
		},
		{
			name:       "doctor not found",
			err:        clinicapi.ErrDoctorNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "doctor not found",
		},
		{
			name:       "transport failure degrades to generic",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantBody:   genericFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
