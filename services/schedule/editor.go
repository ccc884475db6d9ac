package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

const (
	draftPrefix = "dayedit:"
	// DraftTTL is how long unsaved edits survive. Edits before save are
	// local to the editing doctor; nobody else ever sees a draft.
	DraftTTL = 2 * time.Hour
)

// AvailabilityAPI is the slice of the upstream client the editor needs.
type AvailabilityAPI interface {
	DayAvailability(ctx context.Context, doctorID, date string) ([]clinicapi.AvailabilityRow, error)
	ReplaceDayAvailability(ctx context.Context, doctorID, date string, slots []string) error
}

// DayEditor manages a doctor's per-day availability drafts: toggle and clear
// mutate a draft, save replaces the server's set for that date wholesale.
// Last write wins; there is no merge.
type DayEditor struct {
	API    AvailabilityAPI
	Drafts *redis.Client
	TTL    time.Duration
}

// NewDayEditor returns an editor with the default draft TTL.
func NewDayEditor(api AvailabilityAPI, drafts *redis.Client) *DayEditor {
	return &DayEditor{API: api, Drafts: drafts, TTL: DraftTTL}
}

func draftKey(doctorID, date string) string {
	return draftPrefix + doctorID + ":" + date
}

// Day returns the working set for a date: the draft when one exists,
// otherwise the server's current set. A failed upstream load degrades to an
// empty set so the grid still renders, fully closed.
func (e *DayEditor) Day(ctx context.Context, doctorID, date string) (SlotSet, error) {
	if draft, ok, err := e.loadDraft(ctx, doctorID, date); err != nil {
		return nil, err
	} else if ok {
		return draft, nil
	}

	rows, err := e.API.DayAvailability(ctx, doctorID, date)
	if err != nil {
		utils.GetLogger().Warn("day availability load failed, rendering closed",
			zap.String("doctorId", doctorID),
			zap.String("date", date),
			zap.Error(err))
		return SlotSet{}, nil
	}
	return OpenSet(rows), nil
}

// Toggle flips one label in the date's draft and returns the resulting set.
func (e *DayEditor) Toggle(ctx context.Context, doctorID, date, label string) (SlotSet, error) {
	if !InDomain(label) {
		return nil, fmt.Errorf("slot %q is outside the bookable hours", label)
	}
	set, err := e.Day(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	set.Toggle(label)
	if err := e.saveDraft(ctx, doctorID, date, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Clear empties the date's draft.
func (e *DayEditor) Clear(ctx context.Context, doctorID, date string) (SlotSet, error) {
	set := SlotSet{}
	if err := e.saveDraft(ctx, doctorID, date, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Save pushes the date's working set upstream as the new authoritative set
// for that day and drops the draft, so subsequent reads reflect the server.
func (e *DayEditor) Save(ctx context.Context, doctorID, date string) (SlotSet, error) {
	set, err := e.Day(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if err := e.API.ReplaceDayAvailability(ctx, doctorID, date, set.Labels()); err != nil {
		return nil, err
	}
	_ = e.Drafts.Del(ctx, draftKey(doctorID, date)).Err()
	return set, nil
}

func (e *DayEditor) loadDraft(ctx context.Context, doctorID, date string) (SlotSet, bool, error) {
	data, err := e.Drafts.Get(ctx, draftKey(doctorID, date)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load day draft: %w", err)
	}
	var labels []string
	if err := json.Unmarshal([]byte(data), &labels); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal day draft: %w", err)
	}
	return NewSlotSet(labels...), true, nil
}

func (e *DayEditor) saveDraft(ctx context.Context, doctorID, date string, set SlotSet) error {
	data, err := json.Marshal(set.Labels())
	if err != nil {
		return fmt.Errorf("failed to marshal day draft: %w", err)
	}
	ttl := e.TTL
	if ttl <= 0 {
		ttl = DraftTTL
	}
	if err := e.Drafts.Set(ctx, draftKey(doctorID, date), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save day draft: %w", err)
	}
	return nil
}
