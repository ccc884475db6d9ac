package models

// Appointment statuses as reported by the backend. The lifecycle is entirely
// server-owned; the only transition this service ever causes is
// booked -> cancelled. A "rebook" is a brand-new creation, never a reopen.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Appointment is a patient's view of one booking.
type Appointment struct {
	ID         string `json:"id"`
	PatientID  string `json:"patientId,omitempty"`
	DoctorID   string `json:"doctorId,omitempty"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	Status     string `json:"status"`
	DoctorName string `json:"doctorName,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	Note       string `json:"note,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// Cancelled reports which of the two screen buckets the appointment falls
// into. Any unknown or future status lands in the upcoming bucket on
// purpose, so a real appointment is never hidden by a status this code does
// not know about.
func (a Appointment) Cancelled() bool {
	return a.Status == StatusCancelled
}

// CanRebook reports whether the rebook action is available: it navigates to
// the same doctor's booking screen, so it needs a doctor reference.
func (a Appointment) CanRebook() bool {
	return a.DoctorID != ""
}

// DoctorAppointment is the doctor dashboard's view of one booking.
type DoctorAppointment struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
	PatientName string `json:"patientName"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status"`
}
