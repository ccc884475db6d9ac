// Package booking drives the patient-facing appointment workflow: the
// booking screen's session (doctor, day window, slot selection, confirm)
// and the "my appointments" list with its cancel and rebook actions.
//
// The backend owns the actual scheduling invariant. A race where another
// patient takes the slot between load and confirm is resolved upstream and
// surfaced here as a failure message; this code never assumes success until
// the backend's response is observed.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/schedule"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

const (
	sessionPrefix = "booking:"
	// SessionTTL bounds how long an untouched booking screen stays alive.
	SessionTTL = 30 * time.Minute

	// DayWindowSize is the number of dates the day strip shows.
	DayWindowSize = 7
)

// Session is the ephemeral state of one booking screen. It exists only
// between opening the screen and confirm/abandon; changing the selected
// date always clears the chosen slot, because open/closed state is
// date-scoped.
type Session struct {
	SessionID    string        `json:"sessionId"`
	PatientID    string        `json:"patientId"`
	Doctor       models.Doctor `json:"doctor"`
	Days         []string      `json:"days"`
	SelectedDate string        `json:"selectedDate"`
	SelectedSlot string        `json:"selectedSlot,omitempty"`
	OpenSlots    []string      `json:"openSlots"`
	// LoadMessage carries a dismissible status line when an availability
	// load failed; the grid still renders, fully closed.
	LoadMessage string `json:"loadMessage,omitempty"`
}

// OpenSet is the session's open slots as a set.
func (s *Session) OpenSet() schedule.SlotSet {
	return schedule.NewSlotSet(s.OpenSlots...)
}

// ClinicAPI is the slice of the upstream client the workflow needs.
type ClinicAPI interface {
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	DayAvailability(ctx context.Context, doctorID, date string) ([]clinicapi.AvailabilityRow, error)
	CreateAppointment(ctx context.Context, patientID, doctorID, date, timeOfDay string) error
	PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) error
}

// Service orchestrates booking sessions and the appointment list.
type Service struct {
	API   ClinicAPI
	Store *redis.Client
	// Now is the clock the day window is anchored to. Overridable in tests.
	Now func() time.Time
}

// NewService wires the workflow service.
func NewService(api ClinicAPI, store *redis.Client) *Service {
	return &Service{API: api, Store: store, Now: time.Now}
}

// Initiate opens a booking screen for one doctor: resolves the doctor,
// builds the day window, and loads availability for the first day.
func (s *Service) Initiate(ctx context.Context, patientID, doctorID string) (*Session, error) {
	doctor, err := s.API.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		SessionID: uuid.NewString(),
		PatientID: patientID,
		Doctor:    *doctor,
		Days:      schedule.DayWindowFrom(s.Now(), DayWindowSize),
	}
	sess.SelectedDate = sess.Days[0]
	s.loadOpenSlots(ctx, sess, sess.SelectedDate)

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the live session.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.loadSession(ctx, sessionID)
}

// SelectDate switches the session to another date from its day window. The
// chosen slot is cleared unconditionally, then availability for the new
// date is loaded. If a slower, superseded load lands after the session has
// moved on to yet another date, its result is discarded: the screen shows
// the last selected date's slots, not the last response to arrive.
func (s *Service) SelectDate(ctx context.Context, sessionID, date string) (*Session, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !contains(sess.Days, date) {
		return nil, newLocalError(fmt.Sprintf("date %s is outside the booking window", date))
	}

	sess.SelectedDate = date
	sess.SelectedSlot = ""
	sess.OpenSlots = nil
	sess.LoadMessage = ""
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	s.loadOpenSlots(ctx, sess, date)

	// The selection may have moved while the availability call was in
	// flight. Apply the result only if this date is still the one on
	// screen.
	current, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.SelectedDate != date {
		return current, nil
	}
	current.OpenSlots = sess.OpenSlots
	current.LoadMessage = sess.LoadMessage
	if err := s.saveSession(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// SelectSlot picks one open slot. A slot is selectable only when it is in
// the open set loaded for the currently selected date; anything else is
// rejected at this boundary.
func (s *Service) SelectSlot(ctx context.Context, sessionID, label string) (*Session, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.OpenSet().Has(label) {
		return nil, ErrSlotClosed
	}
	sess.SelectedSlot = label
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ConfirmResult reports a successful booking and where to go next.
type ConfirmResult struct {
	Doctor   models.Doctor `json:"doctor"`
	Date     string        `json:"date"`
	Slot     string        `json:"slot"`
	Redirect string        `json:"redirect"`
}

// Confirm submits the booking. The patient must be logged in and a slot
// must be selected, checked locally before any upstream call. The slot was
// only ever confirmed open as of the last load; if someone else took it
// since, the backend refuses and its message is surfaced as-is.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PatientID == "" {
		return nil, ErrNotLoggedIn
	}
	if sess.SelectedDate == "" || sess.SelectedSlot == "" {
		return nil, ErrNoSelection
	}

	err = s.API.CreateAppointment(ctx, sess.PatientID, sess.Doctor.ID, sess.SelectedDate, sess.SelectedSlot+":00")
	if err != nil {
		utils.GetLogger().Warn("booking rejected",
			zap.String("doctorId", sess.Doctor.ID),
			zap.String("date", sess.SelectedDate),
			zap.String("slot", sess.SelectedSlot),
			zap.Error(err))
		return nil, err
	}

	_ = s.Store.Del(ctx, sessionPrefix+sessionID).Err()
	return &ConfirmResult{
		Doctor:   sess.Doctor,
		Date:     sess.SelectedDate,
		Slot:     sess.SelectedSlot,
		Redirect: "/my-appointments",
	}, nil
}

// Abandon drops the booking screen state.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	return s.Store.Del(ctx, sessionPrefix+sessionID).Err()
}

// loadOpenSlots fills sess.OpenSlots for the given date. Failure degrades
// to an empty set plus a status message; it never propagates.
func (s *Service) loadOpenSlots(ctx context.Context, sess *Session, date string) {
	rows, err := s.API.DayAvailability(ctx, sess.Doctor.ID, date)
	if err != nil {
		utils.GetLogger().Warn("availability load failed",
			zap.String("doctorId", sess.Doctor.ID),
			zap.String("date", date),
			zap.Error(err))
		sess.OpenSlots = []string{}
		sess.LoadMessage = messageFor(err, "could not load open slots")
		return
	}
	sess.OpenSlots = schedule.OpenSet(rows).Labels()
	sess.LoadMessage = ""
}

func (s *Service) loadSession(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.Store.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &sess, nil
}

func (s *Service) saveSession(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Store.Set(ctx, sessionPrefix+sess.SessionID, data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

// messageFor prefers the backend's own message and falls back to a generic
// one.
func messageFor(err error, fallback string) string {
	var apiErr *clinicapi.APIError
	if errors.As(err, &apiErr) && apiErr.HasMessage() {
		return apiErr.Message
	}
	return fallback
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
