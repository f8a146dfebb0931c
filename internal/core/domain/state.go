package domain

import "slices"

// AppState is the aggregate root and the unit of persistence: the whole state
// is written and read as one document.
type AppState struct {
	Users    []User           `json:"users"`
	Tasks    []Task           `json:"tasks"`
	Records  []ProgressRecord `json:"records"`
	Messages []Message        `json:"messages"`
	Groups   []Group          `json:"groups"`
	Statuses []StatusUpdate   `json:"statuses"`
	// CurrentUser is the active session, a copy of a User rather than a
	// reference into Users.
	CurrentUser *User `json:"currentUser"`
}

// Clone returns a copy whose collections can be appended to or replaced
// without touching s. Entities inside are shared until replaced.
func (s AppState) Clone() AppState {
	out := AppState{
		Users:    slices.Clone(s.Users),
		Tasks:    slices.Clone(s.Tasks),
		Records:  slices.Clone(s.Records),
		Messages: slices.Clone(s.Messages),
		Groups:   slices.Clone(s.Groups),
		Statuses: slices.Clone(s.Statuses),
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// FindUser looks a user up by id.
func (s AppState) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindGroup looks a group up by id.
func (s AppState) FindGroup(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Supporter returns the first ADMIN account.
func (s AppState) Supporter() (User, bool) {
	for _, u := range s.Users {
		if u.IsAdmin() {
			return u, true
		}
	}
	return User{}, false
}

// Friends returns every FRIEND account in signup order.
func (s AppState) Friends() []User {
	out := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.Role == RoleFriend {
			out = append(out, u)
		}
	}
	return out
}
