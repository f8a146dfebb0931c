package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
)

// stubTracker overrides the TrackerService methods a test needs. Calling any
// other method panics on the nil embedded interface.
type stubTracker struct {
	ports.TrackerService

	activeSessionFn func() (domain.User, error)
	upsertFn        func(ctx context.Context, patch domain.RecordPatch) (domain.ProgressRecord, error)
	sendFn          func(ctx context.Context, receiverID, content string, att *domain.Attachment) (domain.Message, error)
	postFn          func(ctx context.Context, groupID, content string, att *domain.Attachment) (domain.GroupPost, error)
	addGroupFn      func(ctx context.Context, name, description string, memberIDs []string) (domain.Group, error)
	statusesFn      func() []domain.StatusUpdate
	userFn          func(id string) (domain.User, error)
	recordsFn       func(filter ports.RecordFilter) ([]domain.ProgressRecord, error)
	recordFn        func(userID, date string) (domain.ProgressRecord, error)
}

func (s *stubTracker) ActiveSession() (domain.User, error) { return s.activeSessionFn() }

func (s *stubTracker) UpsertRecord(ctx context.Context, patch domain.RecordPatch) (domain.ProgressRecord, error) {
	return s.upsertFn(ctx, patch)
}

func (s *stubTracker) SendMessage(ctx context.Context, receiverID, content string, att *domain.Attachment) (domain.Message, error) {
	return s.sendFn(ctx, receiverID, content, att)
}

func (s *stubTracker) PostToGroup(ctx context.Context, groupID, content string, att *domain.Attachment) (domain.GroupPost, error) {
	return s.postFn(ctx, groupID, content, att)
}

func (s *stubTracker) AddGroup(ctx context.Context, name, description string, memberIDs []string) (domain.Group, error) {
	return s.addGroupFn(ctx, name, description, memberIDs)
}

func (s *stubTracker) Statuses(since time.Time) []domain.StatusUpdate { return s.statusesFn() }

func (s *stubTracker) User(id string) (domain.User, error) { return s.userFn(id) }

func (s *stubTracker) Records(filter ports.RecordFilter) ([]domain.ProgressRecord, error) {
	return s.recordsFn(filter)
}

func (s *stubTracker) Record(userID, date string) (domain.ProgressRecord, error) {
	return s.recordFn(userID, date)
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string, role domain.Role) (string, domain.User, error)
	signupFn func(ctx context.Context, name, username, password string) (string, domain.User, error)
	logouts  int
}

func (s *stubAuthService) Login(ctx context.Context, username, password string, role domain.Role) (string, domain.User, error) {
	return s.loginFn(ctx, username, password, role)
}

func (s *stubAuthService) Signup(ctx context.Context, name, username, password string) (string, domain.User, error) {
	return s.signupFn(ctx, name, username, password)
}

func (s *stubAuthService) Logout(context.Context) error {
	s.logouts++
	return nil
}

type stubInsights struct {
	summaryFn     func(user domain.User, records []domain.ProgressRecord) string
	inspirationFn func(record domain.ProgressRecord) string
}

func (s *stubInsights) SummarizeJournals(_ context.Context, user domain.User, records []domain.ProgressRecord) string {
	return s.summaryFn(user, records)
}

func (s *stubInsights) DailyInspiration(_ context.Context, record domain.ProgressRecord) string {
	return s.inspirationFn(record)
}

func (s *stubInsights) InspirationFor(_ context.Context, record domain.ProgressRecord) string {
	return s.inspirationFn(record)
}

// newContext builds an Echo context with the validator installed and, when
// userID is set, the claims the Auth middleware would inject.
func newContext(method, target, body, userID string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("role", string(role))
	}
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}
