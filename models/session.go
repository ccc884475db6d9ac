package models

// Role identifies the kind of account a session belongs to.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// RoleProfile captures the per-role business rules the UI dispatches on:
// which landing screen follows login and which profile fields are editable.
type RoleProfile struct {
	LandingScreen  string
	EditableFields []string
}

// RoleProfiles is the single lookup table for role-dependent behaviour.
// Patients may not edit birth date or gender; that is a fixed business rule,
// not a transient limitation.
var RoleProfiles = map[Role]RoleProfile{
	RolePatient: {
		LandingScreen:  "/search",
		EditableFields: []string{"firstName", "lastName", "phone", "address"},
	},
	RoleDoctor: {
		LandingScreen:  "/doctor",
		EditableFields: []string{"firstName", "lastName", "phone", "specialtyId"},
	},
}

// Session is the locally persisted record identifying the authenticated
// user. It is created on login, destroyed on logout, and read by every
// protected screen. The role is authoritative only as cached from the last
// successful login; it is never re-validated locally.
type Session struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Token     string `json:"token,omitempty"`
}

// LoggedIn reports whether the session identifies a user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.ID != ""
}
