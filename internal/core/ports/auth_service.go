package ports

import (
	"context"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// AuthService opens and closes the session and issues bearer tokens for it.
type AuthService interface {
	Login(ctx context.Context, username, password string, role domain.Role) (string, domain.User, error)
	Signup(ctx context.Context, name, username, password string) (string, domain.User, error)
	Logout(ctx context.Context) error
}
