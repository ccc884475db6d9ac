// Package clinicapi is the typed HTTP client for the external clinic
// backend. Every screen's data goes through here; the heterogeneous field
// names the backend uses are normalized at this boundary and nowhere else.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

const defaultTimeout = 20 * time.Second

// Client talks to the clinic backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: utils.GetLogger(),
	}
}

// do issues one request and decodes a 2xx body into out (when out is
// non-nil). Non-2xx responses become *APIError carrying the backend's
// message body when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinic api: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("clinic api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clinic api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Message
		}
		c.logger.Warn("clinic api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clinic api: decode response: %w", err)
	}
	return nil
}

// Register creates a patient or doctor account.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	type registerPayload struct {
		Role        models.Role     `json:"role"`
		FirstName   string          `json:"firstName"`
		LastName    string          `json:"lastName"`
		Email       string          `json:"email"`
		Phone       string          `json:"phone"`
		Password    string          `json:"password"`
		BirthDate   string          `json:"birthDate,omitempty"`
		Gender      string          `json:"gender,omitempty"`
		Address     *models.Address `json:"address,omitempty"`
		SpecialtyID int             `json:"specialtyId,omitempty"`
	}
	payload := registerPayload{
		Role:      reg.Role,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Password:  reg.Password,
	}
	if reg.Role == models.RolePatient {
		payload.BirthDate = reg.BirthDate
		payload.Gender = reg.Gender
		payload.Address = reg.Address
	} else {
		payload.SpecialtyID = reg.SpecialtyID
	}
	return c.do(ctx, http.MethodPost, "/api/register", payload, nil)
}

// Login authenticates against the backend.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches a user's role-tagged profile record.
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var payload profilePayload
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), nil, &payload); err != nil {
		return nil, err
	}
	return normalizeProfile(payload), nil
}

// UpdateProfile writes the editable profile fields back.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID), update, nil)
}

// ChangePassword submits a password change. Validation beyond matching the
// current password belongs to the caller.
func (c *Client) ChangePassword(ctx context.Context, userID, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID)+"/password", body, nil)
}

// Specialties lists the specialty taxonomy.
func (c *Client) Specialties(ctx context.Context) ([]models.Specialty, error) {
	var rows []specialtyPayload
	if err := c.do(ctx, http.MethodGet, "/api/specialties", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Specialty, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeSpecialty(row))
	}
	return out, nil
}

// SearchDoctors lists doctors, optionally filtered by free text and
// specialty.
func (c *Client) SearchDoctors(ctx context.Context, q, specialtyID string) ([]models.Doctor, error) {
	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}
	if specialtyID != "" {
		params.Set("specialtyId", specialtyID)
	}
	path := "/api/doctors"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var rows []doctorPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Doctor, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeDoctor(row))
	}
	return out, nil
}

// GetDoctor fetches one doctor. Backends without the detail endpoint answer
// 404; in that case the full list is fetched and filtered by ID.
func (c *Client) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var payload doctorPayload
	err := c.do(ctx, http.MethodGet, "/api/doctors/"+url.PathEscape(doctorID), nil, &payload)
	if err == nil {
		doc := normalizeDoctor(payload)
		return &doc, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	list, err := c.SearchDoctors(ctx, "", "")
	if err != nil {
		return nil, err
	}
	for _, doc := range list {
		if doc.ID == doctorID {
			return &doc, nil
		}
	}
	return nil, ErrDoctorNotFound
}

// DayAvailability fetches the raw open/closed rows for one doctor and date.
func (c *Client) DayAvailability(ctx context.Context, doctorID, date string) ([]AvailabilityRow, error) {
	params := url.Values{}
	params.Set("doctorId", doctorID)
	params.Set("date", date)

	var rows []AvailabilityRow
	if err := c.do(ctx, http.MethodGet, "/api/doctor/availability?"+params.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceDayAvailability overwrites a day's open slot set. Full replace:
// whatever set the doctor saved last wins, there is no merge.
func (c *Client) ReplaceDayAvailability(ctx context.Context, doctorID, date string, slots []string) error {
	body := map[string]interface{}{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	}
	return c.do(ctx, http.MethodPut, "/api/doctor/availability", body, nil)
}

// CreateAppointment books one slot. Slot conflicts are the backend's to
// detect; they surface here as an *APIError.
func (c *Client) CreateAppointment(ctx context.Context, patientID, doctorID, date, timeOfDay string) error {
	body := map[string]string{
		"patientId": patientID,
		"doctorId":  doctorID,
		"date":      date,
		"time":      timeOfDay,
	}
	return c.do(ctx, http.MethodPost, "/api/appointments", body, nil)
}

// PatientAppointments lists all of a patient's appointments, both statuses,
// in one call.
func (c *Client) PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	params := url.Values{}
	params.Set("patientId", patientID)

	var rows []appointmentPayload
	if err := c.do(ctx, http.MethodGet, "/api/appointments?"+params.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeAppointment(row))
	}
	return out, nil
}

// DoctorAppointments lists a doctor's bookings.
func (c *Client) DoctorAppointments(ctx context.Context, doctorID string) ([]models.DoctorAppointment, error) {
	params := url.Values{}
	params.Set("doctorId", doctorID)

	var rows []doctorAppointmentPayload
	if err := c.do(ctx, http.MethodGet, "/api/appointments/doctor?"+params.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.DoctorAppointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeDoctorAppointment(row))
	}
	return out, nil
}

// CancelAppointment asks the backend to cancel a booking, which also
// reopens its slot.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) error {
	return c.do(ctx, http.MethodPut, "/api/appointments/"+url.PathEscape(appointmentID)+"/cancel", nil, nil)
}
