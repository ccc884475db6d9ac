// Package directory is the read-only view of doctors and the specialty
// taxonomy: search with filters, the three sort orders the search screen
// offers, and the "next open slot" hint shown on each card.
package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

// DirectoryAPI is the slice of the upstream client the directory needs.
type DirectoryAPI interface {
	SearchDoctors(ctx context.Context, q, specialtyID string) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
}

// Service reads doctors and specialties.
type Service struct {
	API DirectoryAPI
	// Now anchors the next-available display buckets. Overridable in tests.
	Now func() time.Time
}

// NewService wires the directory.
func NewService(api DirectoryAPI) *Service {
	return &Service{API: api, Now: time.Now}
}

// SearchResult is one doctor card.
type SearchResult struct {
	models.Doctor
	// NextAvailableLabel is the human hint for the next open slot, empty
	// when the doctor has none.
	NextAvailableLabel string `json:"nextAvailableLabel,omitempty"`
}

// Search lists doctors matching the free-text query and specialty filter,
// ordered by the requested sort.
func (s *Service) Search(ctx context.Context, q, specialtyID string, order models.DoctorSort) ([]SearchResult, error) {
	doctors, err := s.API.SearchDoctors(ctx, strings.TrimSpace(q), specialtyID)
	if err != nil {
		return nil, err
	}
	SortDoctors(doctors, order)

	now := s.Now()
	out := make([]SearchResult, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, SearchResult{
			Doctor:             d,
			NextAvailableLabel: NextAvailableLabel(now, d.NextAvailable),
		})
	}
	return out, nil
}

// Doctor resolves a single doctor, including the list-and-filter fallback
// the client performs for backends without a detail endpoint.
func (s *Service) Doctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.API.GetDoctor(ctx, doctorID)
}

// Specialties lists the taxonomy.
func (s *Service) Specialties(ctx context.Context) ([]models.Specialty, error) {
	return s.API.Specialties(ctx)
}

// SortDoctors orders the list in place. Unknown orders leave the backend's
// ordering untouched.
func SortDoctors(doctors []models.Doctor, order models.DoctorSort) {
	switch order {
	case models.SortNameAsc:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].Name < doctors[j].Name
		})
	case models.SortNameDesc:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].Name > doctors[j].Name
		})
	case models.SortNextSoonest:
		sort.SliceStable(doctors, func(i, j int) bool {
			ti, iok := parseNextAvailable(doctors[i].NextAvailable)
			tj, jok := parseNextAvailable(doctors[j].NextAvailable)
			switch {
			case iok && !jok:
				return true
			case !iok && jok:
				return false
			case !iok && !jok:
				return doctors[i].Name < doctors[j].Name
			case ti.Equal(tj):
				return doctors[i].Name < doctors[j].Name
			default:
				return ti.Before(tj)
			}
		})
	}
}

// NextAvailableLabel buckets a next-open-slot timestamp into the hint the
// card shows: "today HH:MM", "tomorrow HH:MM", a weekday within the week,
// or the absolute date beyond that. Unparseable input yields "".
func NextAvailableLabel(now time.Time, raw string) string {
	dt, ok := parseNextAvailable(raw)
	if !ok {
		return ""
	}

	startToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startThen := time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, now.Location())
	diffDays := int(startThen.Sub(startToday).Hours() / 24)

	clock := dt.Format("15:04")
	switch {
	case diffDays == 0:
		return "today " + clock
	case diffDays == 1:
		return "tomorrow " + clock
	case diffDays > 1 && diffDays <= 7:
		return dt.Format("Mon") + " " + clock
	default:
		return dt.Format("2 Jan") + " " + clock
	}
}

// parseNextAvailable accepts both "YYYY-MM-DD HH:MM:SS" and the ISO form.
func parseNextAvailable(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	raw = strings.Replace(raw, " ", "T", 1)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
