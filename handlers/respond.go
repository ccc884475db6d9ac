package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/services/booking"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

// genericFailure is shown when the upstream gave no message of its own.
const genericFailure = "something went wrong, please try again"

// respondError translates a workflow error into the response the screen
// shows. Local validation failures block with a 4xx; upstream failures keep
// their status and surface the backend's message verbatim when one exists;
// transport failures degrade to a generic message. Nothing here is fatal
// and nothing is retried.
func respondError(c *gin.Context, err error) {
	var validationErr *profile.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: validationErr.Message})
		return
	}

	var workflowErr *booking.WorkflowError
	if errors.As(err, &workflowErr) {
		c.JSON(workflowStatus(workflowErr), utils.ErrorResponse{Message: workflowErr.Message})
		return
	}

	var apiErr *clinicapi.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = genericFailure
		}
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, utils.ErrorResponse{Message: msg})
		return
	}

	if errors.Is(err, clinicapi.ErrDoctorNotFound) {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "doctor not found"})
		return
	}

	getLogger(c).Warn("upstream request failed: " + err.Error())
	c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: genericFailure})
}

func workflowStatus(err *booking.WorkflowError) int {
	switch err {
	case booking.ErrNotLoggedIn:
		return http.StatusUnauthorized
	case booking.ErrSessionNotFound, booking.ErrAppointmentNotFound:
		return http.StatusNotFound
	case booking.ErrSlotClosed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
