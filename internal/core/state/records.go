package state

import (
	"fmt"
	"time"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// UpsertRecord merges patch into the record keyed by (UserID, Date), or
// creates it with defaults for the absent fields.
func UpsertRecord(s domain.AppState, env Env, patch domain.RecordPatch) (domain.AppState, domain.ProgressRecord, error) {
	if err := validatePatch(patch); err != nil {
		return s, domain.ProgressRecord{}, err
	}

	next := s.Clone()
	for i, r := range next.Records {
		if r.UserID == patch.UserID && r.Date == patch.Date {
			merged := patch.ApplyTo(r)
			next.Records[i] = merged
			return next, merged, nil
		}
	}

	record := patch.ApplyTo(domain.ProgressRecord{
		ID:             env.newID(),
		UserID:         patch.UserID,
		Date:           patch.Date,
		TasksCompleted: []string{},
	})
	next.Records = append(next.Records, record)
	return next, record, nil
}

func validatePatch(p domain.RecordPatch) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrInvalidRecord)
	}
	if p.Date == "" {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidRecord)
	}
	if _, err := time.Parse(domain.DateLayout, p.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidRecord)
	}
	if p.TimeSpentMinutes != nil && *p.TimeSpentMinutes < 0 {
		return fmt.Errorf("%w: timeSpentMinutes must not be negative", domain.ErrInvalidRecord)
	}
	return nil
}

// FindRecord returns the record for (userID, date).
func FindRecord(s domain.AppState, userID, date string) (domain.ProgressRecord, bool) {
	for _, r := range s.Records {
		if r.UserID == userID && r.Date == date {
			return r, true
		}
	}
	return domain.ProgressRecord{}, false
}
