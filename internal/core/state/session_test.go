package state

import (
	"errors"
	"testing"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

func TestLogin_Success(t *testing.T) {
	s := seed()

	next, user, err := Login(s, "admin", "adminpass", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != domain.SupporterID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if next.CurrentUser == nil || next.CurrentUser.ID != domain.SupporterID {
		t.Fatalf("session not set: %+v", next.CurrentUser)
	}
	if s.CurrentUser != nil {
		t.Fatalf("input state was mutated")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, _, err := Login(seed(), "admin", "wrong", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, _, err = Login(seed(), "ghost", "adminpass", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLogin_RoleMismatch(t *testing.T) {
	env := testEnv()
	s, _, err := Signup(seed(), env, "Alice", "alice", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	s = Logout(s)

	_, _, err = Login(s, "alice", "pw1", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Error() != "This account is not registered as a supporter." {
		t.Fatalf("unexpected message: %q", authErr.Error())
	}
}

func TestSignup_CreatesFriendSession(t *testing.T) {
	s := seed()
	next, user, err := Signup(s, testEnv(), "Alice", "alice", "pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleFriend {
		t.Fatalf("expected FRIEND, got %s", user.Role)
	}
	if !user.JoinedAt.Equal(refTime) {
		t.Fatalf("unexpected joinedAt: %v", user.JoinedAt)
	}
	if len(next.Users) != len(s.Users)+1 {
		t.Fatalf("user not appended")
	}
	if next.Users[len(next.Users)-1].ID != user.ID {
		t.Fatalf("new user is not last")
	}
	if next.CurrentUser == nil || next.CurrentUser.ID != user.ID {
		t.Fatalf("session not set to new user")
	}
	if len(s.Users) != 1 {
		t.Fatalf("input state was mutated")
	}
}

func TestSignup_Validation(t *testing.T) {
	cases := []struct {
		name, username, password string
	}{
		{"", "alice", "pw"},
		{"Alice", "", "pw"},
		{"Alice", "alice", ""},
	}
	for _, tc := range cases {
		_, _, err := Signup(seed(), testEnv(), tc.name, tc.username, tc.password)
		if !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("%+v: expected ErrMissingFields, got %v", tc, err)
		}
	}
}

func TestSignup_WhitespaceIsNotEmpty(t *testing.T) {
	_, user, err := Signup(seed(), testEnv(), "   ", "bob", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "   " || user.Role != domain.RoleFriend {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSignup_UsernameTaken(t *testing.T) {
	_, _, err := Signup(seed(), testEnv(), "Impostor", "admin", "x")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignupThenLogin(t *testing.T) {
	s, _, err := Signup(seed(), testEnv(), "Bob", "bob", "secret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	s = Logout(s)
	if s.CurrentUser != nil {
		t.Fatalf("logout did not clear session")
	}
	if _, _, err := Login(s, "bob", "secret", domain.RoleFriend); err != nil {
		t.Fatalf("login after signup failed: %v", err)
	}
}

func TestSession_NoSession(t *testing.T) {
	if _, err := Session(seed()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
