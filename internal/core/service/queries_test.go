package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
)

func TestTrackerService_Records_FriendScope(t *testing.T) {
	repo := newStubStateRepo()
	repo.state.Records = []domain.ProgressRecord{
		{ID: "r1", UserID: "u-ana", Date: "2024-03-01"},
		{ID: "r2", UserID: "u-ana", Date: "2024-03-05"},
		{ID: "r3", UserID: "u-ben", Date: "2024-03-04"},
	}
	repo.state.Users = append(repo.state.Users,
		domain.User{ID: "u-ana", Name: "Ana", Username: "ana", Password: "pw", Role: domain.RoleFriend},
		domain.User{ID: "u-ben", Name: "Ben", Username: "ben", Password: "pw", Role: domain.RoleFriend},
	)
	svc := newTestTracker(t, repo)

	if _, err := svc.Records(ports.RecordFilter{}); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	if _, err := svc.Login(context.Background(), "ana", "pw", domain.RoleFriend); err != nil {
		t.Fatalf("login: %v", err)
	}
	got, err := svc.Records(ports.RecordFilter{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r2" || got[1].ID != "r1" {
		t.Fatalf("expected ana's records newest first, got %+v", got)
	}
	if _, err := svc.Records(ports.RecordFilter{UserID: "u-ben"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	loginAdmin(t, svc)
	all, err := svc.Records(ports.RecordFilter{From: "2024-03-02", To: "2024-03-05"})
	if err != nil {
		t.Fatalf("Records admin: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r2" || all[1].ID != "r3" {
		t.Fatalf("unexpected date-filtered records: %+v", all)
	}
}

func TestTrackerService_Record(t *testing.T) {
	svc := newTestTracker(t, newStubStateRepo())
	signupFriend(t, svc, "Ana", "ana")

	if _, err := svc.Record("", "2024-03-10"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	created, err := svc.UpsertRecord(context.Background(), domain.RecordPatch{Date: "2024-03-10"})
	if err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}
	got, err := svc.Record("", "2024-03-10")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, got.ID)
	}
}

func TestTrackerService_Conversation(t *testing.T) {
	svc := newTestTracker(t, newStubStateRepo())
	ana := signupFriend(t, svc, "Ana", "ana")
	if _, err := svc.SendMessage(context.Background(), "", "hello", nil); err != nil {
		t.Fatalf("send: %v", err)
	}
	ben := signupFriend(t, svc, "Ben", "ben")
	if _, err := svc.SendMessage(context.Background(), "", "hey there", nil); err != nil {
		t.Fatalf("send: %v", err)
	}

	loginAdmin(t, svc)
	if _, err := svc.SendMessage(context.Background(), ana.ID, "welcome", nil); err != nil {
		t.Fatalf("admin send: %v", err)
	}

	conv, err := svc.Conversation(ana.ID)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(conv) != 2 || conv[0].Content != "hello" || conv[1].Content != "welcome" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
	if _, err := svc.Conversation(""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for admin without peer, got %v", err)
	}

	if _, err := svc.Login(context.Background(), "ben", "pw", domain.RoleFriend); err != nil {
		t.Fatalf("ben login: %v", err)
	}
	benConv, err := svc.Conversation("")
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(benConv) != 1 || benConv[0].SenderID != ben.ID {
		t.Fatalf("unexpected ben conversation: %+v", benConv)
	}
}

func TestTrackerService_GroupsVisibility(t *testing.T) {
	svc := newTestTracker(t, newStubStateRepo())
	ana := signupFriend(t, svc, "Ana", "ana")
	signupFriend(t, svc, "Ben", "ben")
	loginAdmin(t, svc)
	if _, err := svc.AddGroup(context.Background(), "Readers", "", []string{ana.ID}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if _, err := svc.AddGroup(context.Background(), "Empty", "", nil); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}

	all, err := svc.Groups()
	if err != nil || len(all) != 2 {
		t.Fatalf("admin should see every group, got %d (%v)", len(all), err)
	}

	if _, err := svc.Login(context.Background(), "ben", "pw", domain.RoleFriend); err != nil {
		t.Fatalf("ben login: %v", err)
	}
	benGroups, err := svc.Groups()
	if err != nil || len(benGroups) != 0 {
		t.Fatalf("ben should see no groups, got %+v (%v)", benGroups, err)
	}
}

func TestTrackerService_StatusesSince(t *testing.T) {
	repo := newStubStateRepo()
	repo.state.Statuses = []domain.StatusUpdate{
		{ID: "s1", Content: "old", Timestamp: refTime.AddDate(0, 0, -2)},
		{ID: "s2", Content: "new", Timestamp: refTime},
	}
	svc := newTestTracker(t, repo)

	all := svc.Statuses(refTime.AddDate(0, 0, -7))
	if len(all) != 2 || all[0].ID != "s2" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	recent := svc.Statuses(refTime.AddDate(0, 0, -1))
	if len(recent) != 1 || recent[0].ID != "s2" {
		t.Fatalf("expected only s2, got %+v", recent)
	}
}

func TestTrackerService_OverviewAdminOnly(t *testing.T) {
	svc := newTestTracker(t, newStubStateRepo())
	signupFriend(t, svc, "Ana", "ana")

	if _, err := svc.Overview(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	loginAdmin(t, svc)
	rows, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(rows) != 1 || rows[0].User.Username != "ana" {
		t.Fatalf("unexpected overview: %+v", rows)
	}
}

func TestBuildOverview(t *testing.T) {
	s := domain.SeedState(nil, nil)
	s.Users = append(s.Users,
		domain.User{ID: "u-ana", Name: "Ana", Username: "ana", Role: domain.RoleFriend},
		domain.User{ID: "u-ben", Name: "Ben", Username: "ben", Role: domain.RoleFriend},
	)
	s.Records = []domain.ProgressRecord{
		{ID: "r1", UserID: "u-ana", Date: "2024-03-08", TasksCompleted: []string{"t1"}, TimeSpentMinutes: 20, Mood: "tired"},
		{ID: "r2", UserID: "u-ana", Date: "2024-03-10", TasksCompleted: []string{"t1", "t2"}, TimeSpentMinutes: 40, Mood: "great"},
		{ID: "r3", UserID: "u-ana", Date: "2024-03-09", TimeSpentMinutes: 10},
		{ID: "r4", UserID: "u-ana", Date: "2024-03-05", TimeSpentMinutes: 5},
	}

	rows := BuildOverview(s)
	if len(rows) != 2 {
		t.Fatalf("expected one row per friend, got %d", len(rows))
	}
	ana := rows[0]
	if ana.RecordCount != 4 || ana.TotalMinutes != 75 || ana.TasksCompleted != 3 {
		t.Fatalf("unexpected totals: %+v", ana)
	}
	if ana.LastLoggedDate != "2024-03-10" || ana.LatestMood != "great" {
		t.Fatalf("unexpected latest: %+v", ana)
	}
	if ana.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", ana.CurrentStreak)
	}
	if ben := rows[1]; ben.RecordCount != 0 || ben.CurrentStreak != 0 || ben.LastLoggedDate != "" {
		t.Fatalf("unexpected empty row: %+v", ben)
	}
}
