// Package profile loads and saves the role-tagged profile record and
// enforces the form rules that must block a request before it is ever sent:
// which fields each role may edit, the postal code shape, and the password
// change constraints.
package profile

import (
	"context"
	"regexp"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

// ValidationError is a blocking local failure. Nothing is sent upstream
// when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

var postalCodeRe = regexp.MustCompile(`^\d{5}$`)

// ProfileAPI is the slice of the upstream client the editor needs.
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error
	ChangePassword(ctx context.Context, userID, current, next string) error
	Register(ctx context.Context, reg models.Registration) error
}

// Service is the profile editor.
type Service struct {
	API ProfileAPI
}

// NewService wires the editor.
func NewService(api ProfileAPI) *Service {
	return &Service{API: api}
}

// Load fetches the profile. The backend's role tag on the record wins over
// whatever the session cached.
func (s *Service) Load(ctx context.Context, userID string) (*models.Profile, error) {
	return s.API.GetProfile(ctx, userID)
}

// Save validates and writes the editable fields for the given role. Birth
// date and gender are never part of the update, whatever the caller sent.
func (s *Service) Save(ctx context.Context, userID string, role models.Role, update models.ProfileUpdate) error {
	update.Role = role
	switch role {
	case models.RolePatient:
		update.SpecialtyID = 0
		if update.Address != nil && update.Address.PostalCode != "" && !postalCodeRe.MatchString(update.Address.PostalCode) {
			return invalid("postal code must be exactly 5 digits")
		}
		if update.Address == nil {
			update.Address = &models.Address{}
		}
	case models.RoleDoctor:
		update.Address = nil
		if update.SpecialtyID == 0 {
			return invalid("please choose a specialty")
		}
	default:
		return invalid("unknown profile role")
	}
	return s.API.UpdateProfile(ctx, userID, update)
}

// ChangePassword checks the security form locally, then submits. Upstream
// failures pass through with the backend's own message.
func (s *Service) ChangePassword(ctx context.Context, userID string, pw models.PasswordChange) error {
	if pw.Current == "" || pw.New == "" || pw.Confirm == "" {
		return invalid("please fill in every field")
	}
	if len(pw.New) < 8 {
		return invalid("the new password must be at least 8 characters")
	}
	if pw.New != pw.Confirm {
		return invalid("the new password and its confirmation do not match")
	}
	if pw.Current == pw.New {
		return invalid("the new password must differ from the current one")
	}
	return s.API.ChangePassword(ctx, userID, pw.Current, pw.New)
}

// Register validates the sign-up form for the requested role and submits.
func (s *Service) Register(ctx context.Context, reg models.Registration) error {
	if err := ValidateRegistration(reg); err != nil {
		return err
	}
	return s.API.Register(ctx, reg)
}

// ValidateRegistration applies the sign-up form rules.
func ValidateRegistration(reg models.Registration) error {
	if !reg.Role.Valid() {
		return invalid("unknown account role")
	}
	if len(reg.Password) < 6 {
		return invalid("the password must be at least 6 characters")
	}
	if reg.Password != reg.Confirm {
		return invalid("the password and its confirmation do not match")
	}
	switch reg.Role {
	case models.RoleDoctor:
		if reg.SpecialtyID == 0 {
			return invalid("please choose a specialty")
		}
	case models.RolePatient:
		if reg.BirthDate == "" {
			return invalid("please pick a birth date")
		}
		if reg.Gender == "" {
			return invalid("please pick a gender")
		}
		if reg.Address == nil ||
			reg.Address.Line1 == "" || reg.Address.District == "" ||
			reg.Address.Province == "" || reg.Address.PostalCode == "" {
			return invalid("please fill in the full address")
		}
		if !postalCodeRe.MatchString(reg.Address.PostalCode) {
			return invalid("postal code must be exactly 5 digits")
		}
	}
	return nil
}
