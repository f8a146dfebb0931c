package state

import "github.com/kinshiplabs/tracker/internal/core/domain"

// Login sets the session to the user matching username and password exactly.
// A match with a different role fails with ErrRoleMismatch.
func Login(s domain.AppState, username, password string, role domain.Role) (domain.AppState, domain.User, error) {
	for _, u := range s.Users {
		if u.Username != username || u.Password != password {
			continue
		}
		if u.Role != role {
			return s, domain.User{}, &domain.AuthError{Kind: domain.ErrRoleMismatch, Role: role}
		}
		next := s.Clone()
		session := u
		next.CurrentUser = &session
		return next, u, nil
	}
	return s, domain.User{}, domain.NewAuthError(domain.ErrInvalidCredentials)
}

// Signup creates a FRIEND account and makes it the session.
func Signup(s domain.AppState, env Env, name, username, password string) (domain.AppState, domain.User, error) {
	if name == "" || username == "" || password == "" {
		return s, domain.User{}, domain.NewAuthError(domain.ErrMissingFields)
	}
	for _, u := range s.Users {
		if u.Username == username {
			return s, domain.User{}, domain.NewAuthError(domain.ErrUsernameTaken)
		}
	}

	user := domain.User{
		ID:       env.newID(),
		Name:     name,
		Username: username,
		Password: password,
		Role:     domain.RoleFriend,
		JoinedAt: env.now(),
	}

	next := s.Clone()
	next.Users = append(next.Users, user)
	session := user
	next.CurrentUser = &session
	return next, user, nil
}

// Logout clears the session.
func Logout(s domain.AppState) domain.AppState {
	next := s.Clone()
	next.CurrentUser = nil
	return next
}

// Session returns the active user or ErrNoSession.
func Session(s domain.AppState) (domain.User, error) {
	if s.CurrentUser == nil {
		return domain.User{}, domain.ErrNoSession
	}
	return *s.CurrentUser, nil
}
