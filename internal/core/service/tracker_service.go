package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/core/state"
	"github.com/kinshiplabs/tracker/internal/pkg/metrics"
)

// TrackerService owns the single AppState. Mutations are serialized by mu,
// computed with the pure functions of package state, and written through to
// the repository before the in-memory state advances. A failed save leaves
// both copies untouched.
type TrackerService struct {
	mu    sync.Mutex
	repo  ports.StateRepository
	env   state.Env
	queue ports.InspirationQueue
	log   zerolog.Logger
	state domain.AppState
}

var _ ports.TrackerService = (*TrackerService)(nil)

// Option customises a TrackerService.
type Option func(*TrackerService)

// WithEnv overrides the clock and id generator.
func WithEnv(env state.Env) Option {
	return func(s *TrackerService) { s.env = env }
}

// WithInspirationQueue hands every upserted record to q for background
// inspiration generation.
func WithInspirationQueue(q ports.InspirationQueue) Option {
	return func(s *TrackerService) { s.queue = q }
}

// NewTrackerService loads the stored state and returns a ready service.
func NewTrackerService(ctx context.Context, repo ports.StateRepository, log zerolog.Logger, opts ...Option) (*TrackerService, error) {
	s := &TrackerService{
		repo: repo,
		env:  state.DefaultEnv(),
		log:  log,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	s.state = loaded

	ev := s.log.Info().Int("users", len(loaded.Users)).Int("records", len(loaded.Records))
	if loaded.CurrentUser != nil {
		ev = ev.Str("session_user", loaded.CurrentUser.ID)
	}
	ev.Msg("state loaded")
	return s, nil
}

// commit persists next and makes it current. Callers hold mu.
func (s *TrackerService) commit(ctx context.Context, op string, next domain.AppState) error {
	if err := s.repo.Save(ctx, next); err != nil {
		metrics.MutationsTotal.WithLabelValues(op, "error").Inc()
		s.log.Error().Err(err).Str("op", op).Msg("failed to persist state")
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state = next
	metrics.MutationsTotal.WithLabelValues(op, "ok").Inc()
	return nil
}

func (s *TrackerService) reject(op string, err error) error {
	metrics.MutationsTotal.WithLabelValues(op, "rejected").Inc()
	s.log.Debug().Err(err).Str("op", op).Msg("mutation rejected")
	return err
}

// ActiveSession returns the session user or domain.ErrNoSession.
func (s *TrackerService) ActiveSession() (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.Session(s.state)
}

func (s *TrackerService) Login(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	const op = "login"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, user, err := state.Login(s.state, username, password, role)
	if err != nil {
		return domain.User{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.User{}, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return user, nil
}

func (s *TrackerService) Signup(ctx context.Context, name, username, password string) (domain.User, error) {
	const op = "signup"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, user, err := state.Signup(s.state, s.env, name, username, password)
	if err != nil {
		return domain.User{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.User{}, err
	}
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("friend signed up")
	return user, nil
}

// Logout clears the persisted session first, then the in-memory one.
func (s *TrackerService) Logout(ctx context.Context) error {
	const op = "logout"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearSession(ctx); err != nil {
		metrics.MutationsTotal.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	var userID string
	if s.state.CurrentUser != nil {
		userID = s.state.CurrentUser.ID
	}
	s.state = state.Logout(s.state)
	metrics.MutationsTotal.WithLabelValues(op, "ok").Inc()
	s.log.Info().Str("user_id", userID).Msg("logged out")
	return nil
}

// UpsertRecord writes a progress record. Friends write their own records
// (an empty UserID means the session user); the supporter may write for any
// existing user.
func (s *TrackerService) UpsertRecord(ctx context.Context, patch domain.RecordPatch) (domain.ProgressRecord, error) {
	const op = "upsert_record"
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := state.Session(s.state)
	if err != nil {
		return domain.ProgressRecord{}, s.reject(op, err)
	}
	if !session.IsAdmin() {
		if patch.UserID == "" {
			patch.UserID = session.ID
		}
		if patch.UserID != session.ID {
			return domain.ProgressRecord{}, s.reject(op, domain.ErrForbidden)
		}
	} else if patch.UserID != "" {
		if _, ok := s.state.FindUser(patch.UserID); !ok {
			return domain.ProgressRecord{}, s.reject(op, domain.ErrUserNotFound)
		}
	}

	next, record, err := state.UpsertRecord(s.state, s.env, patch)
	if err != nil {
		return domain.ProgressRecord{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.ProgressRecord{}, err
	}
	s.log.Info().Str("record_id", record.ID).Str("user_id", record.UserID).Str("date", record.Date).Msg("record upserted")

	if s.queue != nil {
		s.queue.Enqueue(record)
	}
	return record, nil
}

// SendMessage sends from the session user. Friends may only write to the
// supporter; an empty receiverID addresses the supporter.
func (s *TrackerService) SendMessage(ctx context.Context, receiverID, content string, attachment *domain.Attachment) (domain.Message, error) {
	const op = "send_message"
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, err := state.Session(s.state); err == nil && !session.IsAdmin() {
		supporter, ok := s.state.Supporter()
		if !ok {
			return domain.Message{}, s.reject(op, domain.ErrUserNotFound)
		}
		if receiverID == "" {
			receiverID = supporter.ID
		}
		if receiverID != supporter.ID {
			return domain.Message{}, s.reject(op, domain.ErrForbidden)
		}
	}

	next, msg, err := state.SendMessage(s.state, s.env, receiverID, content, attachment)
	if err != nil {
		return domain.Message{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.Message{}, err
	}
	s.log.Info().Str("message_id", msg.ID).Str("sender_id", msg.SenderID).Str("receiver_id", msg.ReceiverID).Msg("message sent")
	return msg, nil
}

// AddGroup is reserved to the supporter.
func (s *TrackerService) AddGroup(ctx context.Context, name, description string, memberIDs []string) (domain.Group, error) {
	const op = "add_group"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(); err != nil {
		return domain.Group{}, s.reject(op, err)
	}
	if err := s.requireUsers(memberIDs); err != nil {
		return domain.Group{}, s.reject(op, err)
	}

	next, group, err := state.AddGroup(s.state, s.env, name, description, memberIDs)
	if err != nil {
		return domain.Group{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.Group{}, err
	}
	s.log.Info().Str("group_id", group.ID).Int("members", len(group.MemberIDs)).Msg("group created")
	return group, nil
}

// PostToGroup posts as the session user, who must be a member or the supporter.
func (s *TrackerService) PostToGroup(ctx context.Context, groupID, content string, attachment *domain.Attachment) (domain.GroupPost, error) {
	const op = "post_to_group"
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, err := state.Session(s.state); err == nil && !session.IsAdmin() {
		if g, ok := s.state.FindGroup(groupID); ok && !g.HasMember(session.ID) {
			return domain.GroupPost{}, s.reject(op, domain.ErrForbidden)
		}
	}

	next, post, err := state.PostToGroup(s.state, s.env, groupID, content, attachment)
	if err != nil {
		return domain.GroupPost{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.GroupPost{}, err
	}
	s.log.Info().Str("group_id", groupID).Str("post_id", post.ID).Str("author_id", post.AuthorID).Msg("group post added")
	return post, nil
}

// UpdateGroupMembers is reserved to the supporter.
func (s *TrackerService) UpdateGroupMembers(ctx context.Context, groupID string, memberIDs []string) (domain.Group, error) {
	const op = "update_group_members"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(); err != nil {
		return domain.Group{}, s.reject(op, err)
	}
	if err := s.requireUsers(memberIDs); err != nil {
		return domain.Group{}, s.reject(op, err)
	}

	next, group, err := state.UpdateGroupMembers(s.state, groupID, memberIDs)
	if err != nil {
		return domain.Group{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.Group{}, err
	}
	s.log.Info().Str("group_id", group.ID).Int("members", len(group.MemberIDs)).Msg("group members replaced")
	return group, nil
}

func (s *TrackerService) UploadStatus(ctx context.Context, content string, attachment *domain.Attachment) (domain.StatusUpdate, error) {
	const op = "upload_status"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, status, err := state.UploadStatus(s.state, s.env, content, attachment)
	if err != nil {
		return domain.StatusUpdate{}, s.reject(op, err)
	}
	if err := s.commit(ctx, op, next); err != nil {
		return domain.StatusUpdate{}, err
	}
	s.log.Info().Str("status_id", status.ID).Str("user_id", status.UserID).Msg("status uploaded")
	return status, nil
}

func (s *TrackerService) requireAdmin() error {
	session, err := state.Session(s.state)
	if err != nil {
		return err
	}
	if !session.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *TrackerService) requireUsers(ids []string) error {
	for _, id := range ids {
		if _, ok := s.state.FindUser(id); !ok {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
		}
	}
	return nil
}
