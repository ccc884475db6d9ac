package clinicapi

import (
	"net/url"
	"strings"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

const avatarService = "https://api.dicebear.com/7.x/initials/svg?seed="

// AvatarURL returns a deterministic initials-avatar URL for a display name.
// Used whenever the backend does not send an image of its own.
func AvatarURL(name string) string {
	if name == "" {
		name = "?"
	}
	return avatarService + url.QueryEscape(name)
}

func normalizeDoctor(p doctorPayload) models.Doctor {
	name := p.Name
	if name == "" {
		name = p.FullName
	}
	if name == "" {
		name = strings.TrimSpace(strings.Join(nonEmpty(p.FirstName, p.LastName), " "))
	}

	code := p.SpecialtyCode
	if code == "" {
		code = p.Specialty
	}

	specName := p.SpecName
	if specName == "" {
		specName = p.SpecNameTh
	}
	if specName == "" {
		specName = p.SpecTh
	}

	avatar := p.Avatar
	if avatar == "" {
		avatar = p.AvatarURL
	}
	if avatar == "" {
		avatar = AvatarURL(name)
	}

	return models.Doctor{
		ID:            p.ID.String(),
		Name:          name,
		SpecialtyCode: code,
		SpecialtyName: specName,
		AvatarURL:     avatar,
		NextAvailable: p.NextAvailable,
	}
}

func normalizeSpecialty(p specialtyPayload) models.Specialty {
	name := p.NameTh
	if name == "" {
		name = p.LabelTh
	}
	if name == "" {
		name = p.Code
	}
	return models.Specialty{ID: p.ID, Name: name, Code: p.Code}
}

func normalizeAppointment(p appointmentPayload) models.Appointment {
	avatar := p.Avatar
	if avatar == "" {
		avatar = AvatarURL(p.DoctorName)
	}
	return models.Appointment{
		ID:         p.ID.String(),
		PatientID:  p.PatientID.String(),
		DoctorID:   p.DoctorID.String(),
		Date:       trimDate(p.Date),
		Time:       trimClock(p.Time),
		Status:     defaultStatus(p.Status),
		DoctorName: p.DoctorName,
		Specialty:  p.Specialty,
		Note:       p.Note,
		AvatarURL:  avatar,
	}
}

func normalizeDoctorAppointment(p doctorAppointmentPayload) models.DoctorAppointment {
	date := p.AptDate
	if date == "" {
		date = p.Date
	}
	clock := p.AptTime
	if clock == "" {
		clock = p.Time
	}
	return models.DoctorAppointment{
		ID:          p.ID.String(),
		Date:        trimDate(date),
		Time:        trimClock(clock),
		PatientName: strings.TrimSpace(strings.Join(nonEmpty(p.PatientFirstName, p.PatientLastName), " ")),
		Note:        p.Note,
		Status:      defaultStatus(p.Status),
	}
}

func normalizeProfile(p profilePayload) *models.Profile {
	birth := p.BirthDate
	if birth == "" {
		birth = p.BirthDateDB
	}
	prof := &models.Profile{
		ID:          p.ID.String(),
		Role:        models.Role(p.Role),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		BirthDate:   trimDate(birth),
		Gender:      p.Gender,
		SpecialtyID: int(p.SpecialtyID),
	}
	if p.Address != nil {
		prof.Address = &models.Address{
			Line1:      p.Address.Line1,
			District:   p.Address.District,
			Province:   p.Address.Province,
			PostalCode: p.Address.PostalCode,
		}
	}
	return prof
}

// trimDate reduces both "YYYY-MM-DD" and ISO "YYYY-MM-DDTHH:mm:ss..." to the
// date part.
func trimDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// trimClock reduces "HH:MM:SS" to "HH:MM".
func trimClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func defaultStatus(s string) string {
	if s == "" {
		return models.StatusBooked
	}
	return s
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
