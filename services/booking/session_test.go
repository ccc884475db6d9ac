package booking

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/models"
)

type fakeClinicAPI struct {
	doctors      map[string]models.Doctor
	availability map[string][]clinicapi.AvailabilityRow // keyed by doctorID+"|"+date
	availErr     error
	// availHook runs before an availability load returns, simulating work
	// that happens while the call is in flight.
	availHook func(date string)

	appointments []models.Appointment
	listErr      error

	created   []string // "patientID|doctorID|date|time"
	createErr error
	cancelled []string
	cancelErr error
}

func (f *fakeClinicAPI) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, clinicapi.ErrDoctorNotFound
	}
	return &d, nil
}

func (f *fakeClinicAPI) DayAvailability(ctx context.Context, doctorID, date string) ([]clinicapi.AvailabilityRow, error) {
	if f.availHook != nil {
		f.availHook(date)
	}
	if f.availErr != nil {
		return nil, f.availErr
	}
	return f.availability[doctorID+"|"+date], nil
}

func (f *fakeClinicAPI) CreateAppointment(ctx context.Context, patientID, doctorID, date, timeOfDay string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, patientID+"|"+doctorID+"|"+date+"|"+timeOfDay)
	return nil
}

func (f *fakeClinicAPI) PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Appointment(nil), f.appointments...), nil
}

func (f *fakeClinicAPI) CancelAppointment(ctx context.Context, appointmentID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, appointmentID)
	return nil
}

func openRows(labels ...string) []clinicapi.AvailabilityRow {
	rows := make([]clinicapi.AvailabilityRow, 0, len(labels))
	for _, l := range labels {
		open := clinicapi.FlexBool(true)
		rows = append(rows, clinicapi.AvailabilityRow{SlotTime: l + ":00", IsOpen: &open})
	}
	return rows
}

var testNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, api *fakeClinicAPI) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(api, client)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func drRivera() models.Doctor {
	return models.Doctor{ID: "doc-1", Name: "Dr. Rivera", SpecialtyName: "Dermatology"}
}

func TestInitiateBuildsWindowAndLoadsFirstDay(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00", "13:30"),
		},
	}
	svc := newTestService(t, api)

	sess, err := svc.Initiate(context.Background(), "pat-1", "doc-1")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "pat-1", sess.PatientID)
	assert.Equal(t, "Dr. Rivera", sess.Doctor.Name)
	require.Len(t, sess.Days, DayWindowSize)
	assert.Equal(t, "2026-08-30", sess.Days[0])
	assert.Equal(t, "2026-09-05", sess.Days[6])
	assert.Equal(t, "2026-08-30", sess.SelectedDate)
	assert.Empty(t, sess.SelectedSlot)
	assert.Equal(t, []string{"09:00", "13:30"}, sess.OpenSlots)
}

func TestInitiateUnknownDoctor(t *testing.T) {
	svc := newTestService(t, &fakeClinicAPI{doctors: map[string]models.Doctor{}})
	_, err := svc.Initiate(context.Background(), "pat-1", "nope")
	assert.ErrorIs(t, err, clinicapi.ErrDoctorNotFound)
}

func TestGetUnknownSession(t *testing.T) {
	svc := newTestService(t, &fakeClinicAPI{})
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSelectDateClearsSlotAndReloads(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00"),
			"doc-1|2026-08-31": openRows("11:00", "11:30"),
		},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)
	sess, err = svc.SelectSlot(ctx, sess.SessionID, "09:00")
	require.NoError(t, err)
	require.Equal(t, "09:00", sess.SelectedSlot)

	sess, err = svc.SelectDate(ctx, sess.SessionID, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", sess.SelectedDate)
	assert.Empty(t, sess.SelectedSlot)
	assert.Equal(t, []string{"11:00", "11:30"}, sess.OpenSlots)
}

func TestSelectDateDiscardsSupersededLoad(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00"),
			"doc-1|2026-08-31": openRows("11:00", "11:30"),
			"doc-1|2026-09-01": openRows("15:00"),
		},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)

	// While the load for Aug 31 is in flight, the selection moves on to
	// Sep 1 (another request won the race for the stored session).
	api.availHook = func(date string) {
		if date != "2026-08-31" {
			return
		}
		current, err := svc.loadSession(ctx, sess.SessionID)
		require.NoError(t, err)
		current.SelectedDate = "2026-09-01"
		current.OpenSlots = []string{"15:00"}
		require.NoError(t, svc.saveSession(ctx, current))
	}

	got, err := svc.SelectDate(ctx, sess.SessionID, "2026-08-31")
	require.NoError(t, err)

	// The superseded date's slots are discarded: the screen keeps showing
	// the last selected date, not the last response to arrive.
	assert.Equal(t, "2026-09-01", got.SelectedDate)
	assert.NotContains(t, got.OpenSlots, "11:00")
	assert.Equal(t, []string{"15:00"}, got.OpenSlots)

	stored, err := svc.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", stored.SelectedDate)
	assert.NotContains(t, stored.OpenSlots, "11:00")
}

func TestSelectDateOutsideWindow(t *testing.T) {
	api := &fakeClinicAPI{doctors: map[string]models.Doctor{"doc-1": drRivera()}}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)

	_, err = svc.SelectDate(ctx, sess.SessionID, "2027-01-01")
	var wfErr *WorkflowError
	require.ErrorAs(t, err, &wfErr)
}

func TestSelectSlotRejectsClosed(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00"),
		},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, sess.SessionID, "14:00")
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestAvailabilityFailureDegradesToClosedGrid(t *testing.T) {
	api := &fakeClinicAPI{
		doctors:  map[string]models.Doctor{"doc-1": drRivera()},
		availErr: &clinicapi.APIError{Status: 500, Message: "schedule service unavailable"},
	}
	svc := newTestService(t, api)

	sess, err := svc.Initiate(context.Background(), "pat-1", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, sess.OpenSlots)
	assert.Equal(t, "schedule service unavailable", sess.LoadMessage)
}

func TestConfirmRequiresLogin(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00"),
		},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "", "doc-1")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, sess.SessionID, "09:00")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	// The guard fires before anything is sent upstream.
	assert.Empty(t, api.created)
}

func TestConfirmRequiresSelection(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, api.created)
}

func TestConfirmBooksAndClosesSession(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:30"),
		},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, sess.SessionID, "09:30")
	require.NoError(t, err)

	result, err := svc.Confirm(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", result.Date)
	assert.Equal(t, "09:30", result.Slot)
	assert.Equal(t, "/my-appointments", result.Redirect)
	require.Len(t, api.created, 1)
	assert.Equal(t, "pat-1|doc-1|2026-08-30|09:30:00", api.created[0])

	_, err = svc.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirmSurfacesBackendRefusal(t *testing.T) {
	api := &fakeClinicAPI{
		doctors: map[string]models.Doctor{"doc-1": drRivera()},
		availability: map[string][]clinicapi.AvailabilityRow{
			"doc-1|2026-08-30": openRows("09:00"),
		},
		createErr: &clinicapi.APIError{Status: 409, Message: "slot already booked"},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, sess.SessionID, "09:00")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, sess.SessionID)
	var apiErr *clinicapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "slot already booked", apiErr.Message)

	// The session survives a failed confirm so the patient can retry.
	_, err = svc.Get(ctx, sess.SessionID)
	assert.NoError(t, err)
}

func TestAbandonDropsSession(t *testing.T) {
	api := &fakeClinicAPI{doctors: map[string]models.Doctor{"doc-1": drRivera()}}
	svc := newTestService(t, api)
	ctx := context.Background()

	sess, err := svc.Initiate(ctx, "pat-1", "doc-1")
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(ctx, sess.SessionID))
	_, err = svc.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
