package service

import (
	"cmp"
	"slices"
	"time"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/core/state"
)

func (s *TrackerService) Users() []domain.PublicUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PublicUser, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		out = append(out, u.Public())
	}
	return out
}

func (s *TrackerService) User(id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.state.FindUser(id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *TrackerService) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Tasks)
}

// Records lists records newest date first. Friends only see their own.
func (s *TrackerService) Records(filter ports.RecordFilter) ([]domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := state.Session(s.state)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		if filter.UserID == "" {
			filter.UserID = session.ID
		}
		if filter.UserID != session.ID {
			return nil, domain.ErrForbidden
		}
	}

	out := make([]domain.ProgressRecord, 0)
	for _, r := range s.state.Records {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.From != "" && r.Date < filter.From {
			continue
		}
		if filter.To != "" && r.Date > filter.To {
			continue
		}
		out = append(out, r)
	}
	sortRecordsNewestFirst(out)
	return out, nil
}

func (s *TrackerService) Record(userID, date string) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := state.Session(s.state)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	if userID == "" {
		userID = session.ID
	}
	if !session.IsAdmin() && userID != session.ID {
		return domain.ProgressRecord{}, domain.ErrForbidden
	}
	r, ok := state.FindRecord(s.state, userID, date)
	if !ok {
		return domain.ProgressRecord{}, domain.ErrRecordNotFound
	}
	return r, nil
}

// Conversation returns the messages between the session user and
// withUserID, oldest first. For a friend an empty withUserID means the
// supporter.
func (s *TrackerService) Conversation(withUserID string) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := state.Session(s.state)
	if err != nil {
		return nil, err
	}
	if withUserID == "" && !session.IsAdmin() {
		if supporter, ok := s.state.Supporter(); ok {
			withUserID = supporter.ID
		}
	}
	if _, ok := s.state.FindUser(withUserID); !ok {
		return nil, domain.ErrUserNotFound
	}

	out := make([]domain.Message, 0)
	for _, m := range s.state.Messages {
		if m.Between(session.ID, withUserID) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, nil
}

// Groups lists every group for the supporter and the joined ones for a friend.
func (s *TrackerService) Groups() ([]domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := state.Session(s.state)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Group, 0, len(s.state.Groups))
	for _, g := range s.state.Groups {
		if session.IsAdmin() || g.HasMember(session.ID) {
			out = append(out, g)
		}
	}
	return out, nil
}

// Statuses lists status updates newer than since, newest first. A zero since
// returns all of them.
func (s *TrackerService) Statuses(since time.Time) []domain.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.StatusUpdate, 0, len(s.state.Statuses))
	for _, st := range s.state.Statuses {
		if !since.IsZero() && !st.Timestamp.After(since) {
			continue
		}
		out = append(out, st)
	}
	slices.SortStableFunc(out, func(a, b domain.StatusUpdate) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func (s *TrackerService) Overview() ([]ports.FriendSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return BuildOverview(s.state), nil
}

func sortRecordsNewestFirst(records []domain.ProgressRecord) {
	slices.SortStableFunc(records, func(a, b domain.ProgressRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})
}
