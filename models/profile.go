package models

// Address is the patient's postal address block.
type Address struct {
	Line1      string `json:"line1"`
	District   string `json:"district"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// Profile is the role-tagged record behind the profile screen. Patient and
// doctor records share the common fields; the role decides which of the
// remaining ones are present and which are editable.
type Profile struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	// Patient only. Birth date and gender are shown but never written back.
	BirthDate string   `json:"birthDate,omitempty"` // YYYY-MM-DD
	Gender    string   `json:"gender,omitempty"`
	Address   *Address `json:"address,omitempty"`

	// Doctor only.
	SpecialtyID int `json:"specialtyId,omitempty"`
}

// ProfileUpdate is what a save actually sends upstream. It deliberately has
// no birth date or gender fields.
type ProfileUpdate struct {
	Role        Role     `json:"role"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Phone       string   `json:"phone"`
	Address     *Address `json:"address,omitempty"`
	SpecialtyID int      `json:"specialtyId,omitempty"`
}

// PasswordChange is the security form.
type PasswordChange struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
	Confirm string `json:"confirmPassword"`
}

// Registration is the sign-up form for either role.
type Registration struct {
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Confirm   string `json:"confirm"`

	// Patient only.
	BirthDate string   `json:"birthDate,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Address   *Address `json:"address,omitempty"`

	// Doctor only.
	SpecialtyID int `json:"specialtyId,omitempty"`
}
