// Package schedule owns the calendar grid every booking screen is built on:
// the fixed half-hour slot domain, the rolling day window, and the doctor's
// day-availability editor.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
)

// SlotsPerDay is the size of the fixed slot domain.
const SlotsPerDay = 16

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SlotDomain returns the fixed ordered slot labels "09:00".."16:00". The
// half-hour label is appended for every hour except the last, so the domain
// ends on 16:00 with no 16:30.
func SlotDomain() []string {
	out := make([]string, 0, SlotsPerDay)
	for h := 9; h <= 16; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
		if h != 16 {
			out = append(out, fmt.Sprintf("%02d:30", h))
		}
	}
	return out
}

var slotDomainIndex = func() map[string]int {
	idx := make(map[string]int, SlotsPerDay)
	for i, label := range SlotDomain() {
		idx[label] = i
	}
	return idx
}()

// InDomain reports whether a label belongs to the fixed slot domain.
func InDomain(label string) bool {
	_, ok := slotDomainIndex[label]
	return ok
}

// DayWindow returns the next n calendar dates starting today, inclusive.
func DayWindow(n int) []string {
	return DayWindowFrom(time.Now(), n)
}

// DayWindowFrom is DayWindow anchored at an arbitrary moment.
func DayWindowFrom(start time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return days
}

// SlotSet is a set of slot labels drawn from the fixed domain.
type SlotSet map[string]bool

// NewSlotSet builds a set from labels, dropping anything outside the domain.
func NewSlotSet(labels ...string) SlotSet {
	s := SlotSet{}
	for _, label := range labels {
		if InDomain(label) {
			s[label] = true
		}
	}
	return s
}

// Has reports membership.
func (s SlotSet) Has(label string) bool { return s[label] }

// Toggle flips a label's membership. Labels outside the domain are ignored.
func (s SlotSet) Toggle(label string) {
	if !InDomain(label) {
		return
	}
	if s[label] {
		delete(s, label)
	} else {
		s[label] = true
	}
}

// Labels returns the members in domain order.
func (s SlotSet) Labels() []string {
	out := make([]string, 0, len(s))
	for label := range s {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool {
		return slotDomainIndex[out[i]] < slotDomainIndex[out[j]]
	})
	return out
}

// OpenSet derives the set of open labels from the backend's availability
// rows. Boolean-like flags are coerced, times are trimmed to HH:MM, and any
// label outside the fixed domain is dropped: the client never invents a slot
// the calendar cannot render.
func OpenSet(rows []clinicapi.AvailabilityRow) SlotSet {
	s := SlotSet{}
	for _, row := range rows {
		if !row.Open() {
			continue
		}
		if label := row.Label(); InDomain(label) {
			s[label] = true
		}
	}
	return s
}
