package booking

import "fmt"

// WorkflowError is a user-visible failure in the booking workflow. Message
// is what the screen shows; Code distinguishes local rejections from
// upstream failures.
type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newLocalError(msg string) error {
	return &WorkflowError{Code: "localError", Message: msg}
}

var (
	// ErrSessionNotFound means the booking screen state expired or never
	// existed.
	ErrSessionNotFound = &WorkflowError{Code: "sessionNotFound", Message: "booking session not found"}
	// ErrNotLoggedIn blocks a confirm before any upstream call is made.
	ErrNotLoggedIn = &WorkflowError{Code: "notLoggedIn", Message: "please log in before booking"}
	// ErrNoSelection means confirm was pressed without a date and slot.
	ErrNoSelection = &WorkflowError{Code: "noSelection", Message: "please pick a date and a time slot"}
	// ErrSlotClosed rejects picking a slot that is not in the loaded open
	// set. This is a boundary rejection, not an internal failure.
	ErrSlotClosed = &WorkflowError{Code: "slotClosed", Message: "that time slot is not available"}
	// ErrConfirmationRequired means a cancel arrived without the explicit
	// confirmation flag.
	ErrConfirmationRequired = &WorkflowError{Code: "confirmationRequired", Message: "cancellation requires confirmation"}
	// ErrRebookUnavailable means the cancelled appointment carries no doctor
	// reference to rebook with.
	ErrRebookUnavailable = &WorkflowError{Code: "rebookUnavailable", Message: "no doctor reference to rebook with"}
	// ErrAppointmentNotFound means the appointment is not in the held list.
	ErrAppointmentNotFound = &WorkflowError{Code: "appointmentNotFound", Message: "appointment not found"}
)
