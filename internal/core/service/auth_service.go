package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService opens sessions on the tracker and issues bearer tokens for them.
// A token is only honoured while its subject is still the session user.
type AuthService struct {
	tracker   ports.TrackerService
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(tracker ports.TrackerService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{tracker: tracker, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Login authenticates against the given role and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string, role domain.Role) (string, domain.User, error) {
	user, err := s.tracker.Login(ctx, username, password, role)
	if err != nil {
		return "", domain.User{}, err
	}
	token, err := s.generateToken(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Signup registers a friend, logs them in and returns a signed token.
func (s *AuthService) Signup(ctx context.Context, name, username, password string) (string, domain.User, error) {
	user, err := s.tracker.Signup(ctx, name, username, password)
	if err != nil {
		return "", domain.User{}, err
	}
	token, err := s.generateToken(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.tracker.Logout(ctx)
}

func (s *AuthService) generateToken(user domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
