package service

import (
	"slices"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
)

// BuildOverview summarises every friend's records, in user order.
func BuildOverview(s domain.AppState) []ports.FriendSummary {
	byUser := make(map[string][]domain.ProgressRecord)
	for _, r := range s.Records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	friends := s.Friends()
	out := make([]ports.FriendSummary, 0, len(friends))
	for _, f := range friends {
		records := byUser[f.ID]
		sum := ports.FriendSummary{User: f.Public(), RecordCount: len(records)}
		for _, r := range records {
			sum.TotalMinutes += r.TimeSpentMinutes
			sum.TasksCompleted += len(r.TasksCompleted)
			if r.Date > sum.LastLoggedDate {
				sum.LastLoggedDate = r.Date
				sum.LatestMood = r.Mood
			}
		}
		sum.CurrentStreak = currentStreak(records)
		out = append(out, sum)
	}
	return out
}

// currentStreak counts consecutive calendar days ending at the most recent
// logged date.
func currentStreak(records []domain.ProgressRecord) int {
	if len(records) == 0 {
		return 0
	}
	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	slices.Sort(dates)
	dates = slices.Compact(dates)

	streak := 1
	for i := len(dates) - 1; i > 0; i-- {
		cur := domain.ProgressRecord{Date: dates[i]}.Day()
		prev := domain.ProgressRecord{Date: dates[i-1]}.Day()
		if !prev.AddDate(0, 0, 1).Equal(cur) {
			break
		}
		streak++
	}
	return streak
}
