package domain

import "time"

// SupporterID is the fixed id of the seeded supporter account.
const SupporterID = "admin-1"

var seedJoinedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedUsers is the initial account list: the single supporter.
func SeedUsers() []User {
	return []User{
		{
			ID:       SupporterID,
			Name:     "Supporter",
			Username: "admin",
			Password: "adminpass",
			Role:     RoleAdmin,
			JoinedAt: seedJoinedAt,
		},
	}
}

// SeedTasks is the initial task catalogue.
func SeedTasks() []Task {
	return []Task{
		{ID: "t1", Title: "Morning workout", Description: "At least 20 minutes of movement", Category: "health"},
		{ID: "t2", Title: "Deep work block", Description: "One focused hour on the main goal", Category: "work"},
		{ID: "t3", Title: "Read 20 pages", Description: "Any book, no screens", Category: "learning"},
		{ID: "t4", Title: "Drink 2L of water", Category: "health"},
		{ID: "t5", Title: "Plan tomorrow", Description: "Write down the top three priorities", Category: "habits"},
		{ID: "t6", Title: "Reach out to someone", Description: "Message a friend or family member", Category: "social"},
	}
}

// SeedState is the state used when nothing has been stored yet.
func SeedState(users []User, tasks []Task) AppState {
	if users == nil {
		users = SeedUsers()
	}
	if tasks == nil {
		tasks = SeedTasks()
	}
	return AppState{
		Users:    users,
		Tasks:    tasks,
		Records:  []ProgressRecord{},
		Messages: []Message{},
		Groups:   []Group{},
		Statuses: []StatusUpdate{},
	}
}
