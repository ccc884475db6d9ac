package models

// Doctor is the read-only projection of a doctor the directory exposes to
// every screen. It is normalized once at the upstream boundary; the rest of
// the code never sees the backend's heterogeneous field names.
type Doctor struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SpecialtyCode string `json:"specialtyCode,omitempty"`
	SpecialtyName string `json:"specialtyName,omitempty"`
	AvatarURL     string `json:"avatarUrl"`
	// NextAvailable is the backend's "next open slot" hint in
	// "YYYY-MM-DD HH:MM:SS" form, empty when the doctor has no open slots.
	NextAvailable string `json:"nextAvailable,omitempty"`
}

// Specialty is one entry of the clinic's specialty taxonomy.
type Specialty struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// DoctorSort enumerates the orderings the search screen offers.
type DoctorSort string

const (
	SortNameAsc     DoctorSort = "name_asc"
	SortNameDesc    DoctorSort = "name_desc"
	SortNextSoonest DoctorSort = "next_soonest"
)
