package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

const (
	listPrefix = "appts:"
	// ListTTL bounds how long the held appointment list survives between
	// actions on the screen. Reopening the screen refetches.
	ListTTL = 15 * time.Minute

	// ViewUpcoming and ViewCancelled name the two screen buckets.
	ViewUpcoming  = "upcoming"
	ViewCancelled = "cancelled"
)

// AppointmentList is the screen state behind "my appointments": the held
// list plus which bucket is active. The list is a read-mostly projection
// refreshed per screen load and patched in place on a successful cancel.
type AppointmentList struct {
	PatientID  string               `json:"patientId"`
	Items      []models.Appointment `json:"items"`
	ActiveView string               `json:"activeView"`
}

// Partition splits appointments into the upcoming and cancelled buckets.
// Only an explicit "cancelled" status lands in the cancelled bucket; every
// other value, known or not, counts as upcoming so no real appointment is
// hidden.
func Partition(items []models.Appointment) (upcoming, cancelled []models.Appointment) {
	for _, a := range items {
		if a.Cancelled() {
			cancelled = append(cancelled, a)
		} else {
			upcoming = append(upcoming, a)
		}
	}
	return upcoming, cancelled
}

// Upcoming returns the upcoming bucket.
func (l *AppointmentList) Upcoming() []models.Appointment {
	up, _ := Partition(l.Items)
	return up
}

// Cancelled returns the cancelled bucket.
func (l *AppointmentList) Cancelled() []models.Appointment {
	_, cn := Partition(l.Items)
	return cn
}

// List fetches the patient's appointments, both statuses in one call, and
// holds them as the screen's working state.
func (s *Service) List(ctx context.Context, patientID string) (*AppointmentList, error) {
	if patientID == "" {
		return nil, ErrNotLoggedIn
	}
	items, err := s.API.PatientAppointments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	list := &AppointmentList{
		PatientID:  patientID,
		Items:      items,
		ActiveView: ViewUpcoming,
	}
	if err := s.saveList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetView switches the active bucket.
func (s *Service) SetView(ctx context.Context, patientID, view string) (*AppointmentList, error) {
	if view != ViewUpcoming && view != ViewCancelled {
		return nil, newLocalError(fmt.Sprintf("unknown view %q", view))
	}
	list, err := s.heldList(ctx, patientID)
	if err != nil {
		return nil, err
	}
	list.ActiveView = view
	if err := s.saveList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Cancel cancels one appointment. The caller must pass the user's explicit
// confirmation through; without it nothing is sent. On success only that
// record's status flips locally, with no refetch, and the screen switches
// to the cancelled bucket. On failure the held list is left untouched, and
// an ID outside the held list is refused before anything goes upstream.
func (s *Service) Cancel(ctx context.Context, patientID, appointmentID string, confirmed bool) (*AppointmentList, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	list, err := s.heldList(ctx, patientID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list.Items {
		if list.Items[i].ID == appointmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := s.API.CancelAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}

	list.Items[idx].Status = models.StatusCancelled
	list.ActiveView = ViewCancelled
	if err := s.saveList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// RebookTarget is where a rebook sends the patient.
type RebookTarget struct {
	DoctorID string `json:"doctorId"`
	Redirect string `json:"redirect"`
}

// Rebook hides the cancelled record from the held list and reports the same
// doctor's booking screen as the navigation target. This is cosmetic: the
// record on the server stays cancelled, and the new booking is a brand-new
// creation. Records without a doctor reference cannot be rebooked.
func (s *Service) Rebook(ctx context.Context, patientID, appointmentID string) (*RebookTarget, error) {
	list, err := s.heldList(ctx, patientID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list.Items {
		if list.Items[i].ID == appointmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAppointmentNotFound
	}
	appt := list.Items[idx]
	if !appt.CanRebook() {
		return nil, ErrRebookUnavailable
	}

	list.Items = append(list.Items[:idx], list.Items[idx+1:]...)
	if err := s.saveList(ctx, list); err != nil {
		return nil, err
	}
	return &RebookTarget{
		DoctorID: appt.DoctorID,
		Redirect: "/appointment/" + appt.DoctorID,
	}, nil
}

// heldList returns the screen's working list, fetching it fresh when the
// held copy expired.
func (s *Service) heldList(ctx context.Context, patientID string) (*AppointmentList, error) {
	if patientID == "" {
		return nil, ErrNotLoggedIn
	}
	data, err := s.Store.Get(ctx, listPrefix+patientID).Result()
	if err == redis.Nil {
		return s.List(ctx, patientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment list: %w", err)
	}
	var list AppointmentList
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal appointment list: %w", err)
	}
	return &list, nil
}

func (s *Service) saveList(ctx context.Context, list *AppointmentList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment list: %w", err)
	}
	if err := s.Store.Set(ctx, listPrefix+list.PatientID, data, ListTTL).Err(); err != nil {
		return fmt.Errorf("failed to save appointment list: %w", err)
	}
	return nil
}
