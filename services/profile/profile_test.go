package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

type fakeProfileAPI struct {
	profile *models.Profile

	updates   []models.ProfileUpdate
	pwChanges int
	registers int
}

func (f *fakeProfileAPI) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfileAPI) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeProfileAPI) ChangePassword(ctx context.Context, userID, current, next string) error {
	f.pwChanges++
	return nil
}

func (f *fakeProfileAPI) Register(ctx context.Context, reg models.Registration) error {
	f.registers++
	return nil
}

func TestSavePatientDropsSpecialtyAndChecksPostal(t *testing.T) {
	api := &fakeProfileAPI{}
	svc := NewService(api)

	update := models.ProfileUpdate{
		FirstName:   "Mali",
		LastName:    "Srisuk",
		Phone:       "0812345678",
		SpecialtyID: 3,
		Address:     &models.Address{Line1: "1 Main Rd", District: "Bang Rak", Province: "Bangkok", PostalCode: "10500"},
	}
	require.NoError(t, svc.Save(context.Background(), "42", models.RolePatient, update))

	require.Len(t, api.updates, 1)
	sent := api.updates[0]
	assert.Equal(t, models.RolePatient, sent.Role)
	assert.Zero(t, sent.SpecialtyID)
	assert.Equal(t, "10500", sent.Address.PostalCode)
}

func TestSavePatientRejectsBadPostalCode(t *testing.T) {
	api := &fakeProfileAPI{}
	svc := NewService(api)

	tests := []string{"1234", "123456", "1050a", "10 50"}
	for _, postal := range tests {
		t.Run(postal, func(t *testing.T) {
			update := models.ProfileUpdate{
				Address: &models.Address{PostalCode: postal},
			}
			err := svc.Save(context.Background(), "42", models.RolePatient, update)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
	assert.Empty(t, api.updates)
}

func TestSaveDoctorDropsAddressAndRequiresSpecialty(t *testing.T) {
	api := &fakeProfileAPI{}
	svc := NewService(api)

	update := models.ProfileUpdate{
		FirstName:   "Anya",
		SpecialtyID: 2,
		Address:     &models.Address{Line1: "should be dropped"},
	}
	require.NoError(t, svc.Save(context.Background(), "7", models.RoleDoctor, update))
	require.Len(t, api.updates, 1)
	assert.Nil(t, api.updates[0].Address)

	err := svc.Save(context.Background(), "7", models.RoleDoctor, models.ProfileUpdate{})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestChangePasswordRules(t *testing.T) {
	tests := []struct {
		name string
		pw   models.PasswordChange
	}{
		{"missing field", models.PasswordChange{Current: "old-secret", New: "new-secret-1"}},
		{"too short", models.PasswordChange{Current: "old-secret", New: "short", Confirm: "short"}},
		{"mismatch", models.PasswordChange{Current: "old-secret", New: "new-secret-1", Confirm: "new-secret-2"}},
		{"unchanged", models.PasswordChange{Current: "same-secret", New: "same-secret", Confirm: "same-secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeProfileAPI{}
			svc := NewService(api)

			err := svc.ChangePassword(context.Background(), "42", tt.pw)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			// A blocked form never reaches the backend.
			assert.Zero(t, api.pwChanges)
		})
	}
}

func TestChangePasswordSubmitsValidForm(t *testing.T) {
	api := &fakeProfileAPI{}
	svc := NewService(api)

	pw := models.PasswordChange{Current: "old-secret", New: "new-secret-1", Confirm: "new-secret-1"}
	require.NoError(t, svc.ChangePassword(context.Background(), "42", pw))
	assert.Equal(t, 1, api.pwChanges)
}

func validPatientRegistration() models.Registration {
	return models.Registration{
		Role:      models.RolePatient,
		FirstName: "Mali",
		LastName:  "Srisuk",
		Email:     "mali@example.com",
		Password:  "secret1",
		Confirm:   "secret1",
		BirthDate: "1995-04-12",
		Gender:    "female",
		Address:   &models.Address{Line1: "1 Main Rd", District: "Bang Rak", Province: "Bangkok", PostalCode: "10500"},
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Registration)
		wantErr bool
	}{
		{"valid patient", func(r *models.Registration) {}, false},
		{"valid doctor", func(r *models.Registration) {
			*r = models.Registration{Role: models.RoleDoctor, Password: "secret1", Confirm: "secret1", SpecialtyID: 2}
		}, false},
		{"unknown role", func(r *models.Registration) { r.Role = "admin" }, true},
		{"short password", func(r *models.Registration) { r.Password, r.Confirm = "12345", "12345" }, true},
		{"password mismatch", func(r *models.Registration) { r.Confirm = "other" }, true},
		{"doctor without specialty", func(r *models.Registration) {
			*r = models.Registration{Role: models.RoleDoctor, Password: "secret1", Confirm: "secret1"}
		}, true},
		{"patient without birth date", func(r *models.Registration) { r.BirthDate = "" }, true},
		{"patient without gender", func(r *models.Registration) { r.Gender = "" }, true},
		{"patient without address", func(r *models.Registration) { r.Address = nil }, true},
		{"patient with partial address", func(r *models.Registration) { r.Address.Province = "" }, true},
		{"patient with bad postal code", func(r *models.Registration) { r.Address.PostalCode = "105" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validPatientRegistration()
			tt.mutate(&reg)
			err := ValidateRegistration(reg)
			if tt.wantErr {
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterBlocksInvalidFormLocally(t *testing.T) {
	api := &fakeProfileAPI{}
	svc := NewService(api)

	reg := validPatientRegistration()
	reg.Password = "123"
	reg.Confirm = "123"

	err := svc.Register(context.Background(), reg)
	require.Error(t, err)
	assert.Zero(t, api.registers)

	require.NoError(t, svc.Register(context.Background(), validPatientRegistration()))
	assert.Equal(t, 1, api.registers)
}
