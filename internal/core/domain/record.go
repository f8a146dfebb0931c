package domain

import "time"

// DateLayout is the calendar date format of ProgressRecord.Date.
const DateLayout = "2006-01-02"

// ProgressRecord is one friend's logged activity for one calendar date.
// (UserID, Date) is the natural key; ID is a surrogate.
type ProgressRecord struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	Date             string   `json:"date"`
	TasksCompleted   []string `json:"tasksCompleted"`
	TimeSpentMinutes int      `json:"timeSpentMinutes"`
	Remarks          string   `json:"remarks"`
	DayJournal       string   `json:"dayJournal"`
	Mood             string   `json:"mood"`
}

// Day parses Date. The zero time is returned for malformed dates.
func (r ProgressRecord) Day() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RecordPatch is a partial ProgressRecord. Nil fields are left untouched on
// merge and defaulted on creation. UserID and Date form the upsert key.
type RecordPatch struct {
	UserID           string
	Date             string
	TasksCompleted   *[]string
	TimeSpentMinutes *int
	Remarks          *string
	DayJournal       *string
	Mood             *string
}

// ApplyTo merges the present fields of p over r.
func (p RecordPatch) ApplyTo(r ProgressRecord) ProgressRecord {
	if p.TasksCompleted != nil {
		r.TasksCompleted = dedupeIDs(*p.TasksCompleted)
	}
	if p.TimeSpentMinutes != nil {
		r.TimeSpentMinutes = *p.TimeSpentMinutes
	}
	if p.Remarks != nil {
		r.Remarks = *p.Remarks
	}
	if p.DayJournal != nil {
		r.DayJournal = *p.DayJournal
	}
	if p.Mood != nil {
		r.Mood = *p.Mood
	}
	return r
}

// dedupeIDs keeps the first occurrence of every id; tasksCompleted is a set.
func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
