package service

import "github.com/kinshiplabs/tracker/internal/core/domain"

// View names the screen a client should render for the current session.
type View string

const (
	ViewUnauthenticated View = "unauthenticated"
	ViewAdminDashboard  View = "admin_dashboard"
	ViewFriendDashboard View = "friend_dashboard"
)

func ResolveView(current *domain.User) View {
	switch {
	case current == nil:
		return ViewUnauthenticated
	case current.IsAdmin():
		return ViewAdminDashboard
	default:
		return ViewFriendDashboard
	}
}
