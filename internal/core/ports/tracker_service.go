package ports

import (
	"context"
	"time"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// RecordFilter narrows ListRecords. An empty UserID means every user.
type RecordFilter struct {
	UserID string
	From   string // inclusive YYYY-MM-DD
	To     string // inclusive YYYY-MM-DD
}

// FriendSummary is one row of the supporter overview.
type FriendSummary struct {
	User           domain.PublicUser `json:"user"`
	RecordCount    int               `json:"recordCount"`
	TotalMinutes   int               `json:"totalMinutes"`
	TasksCompleted int               `json:"tasksCompleted"`
	LastLoggedDate string            `json:"lastLoggedDate,omitempty"`
	CurrentStreak  int               `json:"currentStreak"`
	LatestMood     string            `json:"latestMood,omitempty"`
}

// TrackerService is the single controller owning AppState. Every accepted
// mutation is persisted before it returns.
type TrackerService interface {
	ActiveSession() (domain.User, error)
	Login(ctx context.Context, username, password string, role domain.Role) (domain.User, error)
	Signup(ctx context.Context, name, username, password string) (domain.User, error)
	Logout(ctx context.Context) error

	UpsertRecord(ctx context.Context, patch domain.RecordPatch) (domain.ProgressRecord, error)
	SendMessage(ctx context.Context, receiverID, content string, attachment *domain.Attachment) (domain.Message, error)
	AddGroup(ctx context.Context, name, description string, memberIDs []string) (domain.Group, error)
	PostToGroup(ctx context.Context, groupID, content string, attachment *domain.Attachment) (domain.GroupPost, error)
	UpdateGroupMembers(ctx context.Context, groupID string, memberIDs []string) (domain.Group, error)
	UploadStatus(ctx context.Context, content string, attachment *domain.Attachment) (domain.StatusUpdate, error)

	Users() []domain.PublicUser
	User(id string) (domain.User, error)
	Tasks() []domain.Task
	Records(filter RecordFilter) ([]domain.ProgressRecord, error)
	Record(userID, date string) (domain.ProgressRecord, error)
	Conversation(withUserID string) ([]domain.Message, error)
	Groups() ([]domain.Group, error)
	Statuses(since time.Time) []domain.StatusUpdate
	Overview() ([]FriendSummary, error)
}
