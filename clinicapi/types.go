package clinicapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexID decodes an identifier the backend sends either as a JSON number or
// a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// FlexBool decodes boolean-like flags: true/false, 1/0, and their string
// forms. Anything unrecognized decodes to false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch s {
	case "1", "true", "TRUE", "True":
		*b = true
	default:
		*b = false
	}
	return nil
}

// doctorPayload covers every field name the backend has been observed to use
// for a doctor row. Normalization into models.Doctor happens in one place.
type doctorPayload struct {
	ID            FlexID `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	SpecialtyCode string `json:"specialty_code"`
	Specialty     string `json:"specialty"`
	SpecName      string `json:"specialty_name"`
	SpecNameTh    string `json:"specialty_name_th"`
	SpecTh        string `json:"specialty_th"`
	Avatar        string `json:"avatar"`
	AvatarURL     string `json:"avatarUrl"`
	NextAvailable string `json:"next_available"`
}

// specialtyPayload is one taxonomy row; the display name falls back from
// name_th to label_th to code.
type specialtyPayload struct {
	ID      int    `json:"id"`
	NameTh  string `json:"name_th"`
	LabelTh string `json:"label_th"`
	Code    string `json:"code"`
}

// AvailabilityRow is one half-hour flag as the backend reports it, e.g.
// {slot_time:"09:00:00", is_open:1}. Some deployments send "time" instead of
// "slot_time", and some report only the open rows with no is_open flag at
// all, so the flag is a pointer: absent means the row's presence is the
// signal.
type AvailabilityRow struct {
	SlotTime string    `json:"slot_time"`
	Time     string    `json:"time"`
	IsOpen   *FlexBool `json:"is_open"`
}

// Open reports whether the row marks an open slot.
func (r AvailabilityRow) Open() bool {
	return r.IsOpen == nil || bool(*r.IsOpen)
}

// Label returns the row's time trimmed to HH:MM.
func (r AvailabilityRow) Label() string {
	t := r.SlotTime
	if t == "" {
		t = r.Time
	}
	if len(t) > 5 {
		t = t[:5]
	}
	return t
}

type appointmentPayload struct {
	ID         FlexID `json:"id"`
	PatientID  FlexID `json:"patientId"`
	DoctorID   FlexID `json:"doctorId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	DoctorName string `json:"doctorName"`
	Specialty  string `json:"specialty"`
	Note       string `json:"note"`
	Avatar     string `json:"avatar"`
}

type doctorAppointmentPayload struct {
	ID               FlexID `json:"id"`
	AptDate          string `json:"apt_date"`
	Date             string `json:"date"`
	AptTime          string `json:"apt_time"`
	Time             string `json:"time"`
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	Note             string `json:"note"`
	Status           string `json:"status"`
}

type profilePayload struct {
	ID          FlexID          `json:"id"`
	Role        string          `json:"role"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	BirthDate   string          `json:"birthDate"`
	BirthDateDB string          `json:"birth_date"`
	Gender      string          `json:"gender"`
	Address     *addressPayload `json:"address"`
	SpecialtyID flexInt         `json:"specialtyId"`
}

type addressPayload struct {
	Line1      string `json:"line1"`
	District   string `json:"district"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// flexInt decodes an integer the backend sends as a number or a string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// LoginResult is what a successful POST /api/login returns.
type LoginResult struct {
	ID        FlexID `json:"id"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Token     string `json:"token"`
}
