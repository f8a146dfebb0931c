package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid credentials", domain.NewAuthError(domain.ErrInvalidCredentials), http.StatusUnauthorized, "Invalid username or password"},
		{"role mismatch", &domain.AuthError{Kind: domain.ErrRoleMismatch, Role: domain.RoleAdmin}, http.StatusUnauthorized, "This account is not registered as a supporter."},
		{"missing fields", domain.NewAuthError(domain.ErrMissingFields), http.StatusBadRequest, "All fields are required"},
		{"username taken", domain.NewAuthError(domain.ErrUsernameTaken), http.StatusConflict, "Username already taken"},
		{"no session", domain.ErrNoSession, http.StatusUnauthorized, "no active session"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"wrapped user not found", fmt.Errorf("%w: ghost", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"group not found", domain.ErrGroupNotFound, http.StatusNotFound, "group not found"},
		{"empty message", domain.ErrEmptyMessage, http.StatusUnprocessableEntity, domain.ErrEmptyMessage.Error()},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}
