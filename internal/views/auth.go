package views

import (
	"context"
	"fmt"

	"shelfctl/internal/api"
	"shelfctl/internal/session"
)

const (
	LibrarianDashboardPath = "/dashboard/librarian"
	MemberDashboardPath    = "/dashboard/member"
)

// AuthView covers the login and registration screens. Neither is behind the
// session guard; login is how a session comes to exist.
type AuthView struct {
	View
	Store session.Store
}

// Login exchanges credentials for tokens and persists the session in one
// step. On success the role decides the dashboard destination.
func (v *AuthView) Login(ctx context.Context, email, password string) {
	result, res, err := v.Client.Login(ctx, email, password)
	if v.failed(res, err) {
		return
	}

	if err := v.Store.Save(session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Role:         result.Role,
	}); err != nil {
		fmt.Fprintf(v.Status, "Error: Could not save session: %v\n", err)
		return
	}

	fmt.Fprintf(v.Out, "Logged in as %s. Dashboard: %s\n", result.Role, DashboardPath(result.Role))
}

// Register creates an account and points the user at login; no session is
// created implicitly.
func (v *AuthView) Register(ctx context.Context, name, email, password, role string) {
	res, err := v.Client.Register(ctx, api.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if v.failed(res, err) {
		return
	}

	fmt.Fprintln(v.Out, "Registration successful! Please login.")
}

// DashboardPath maps a role to its dashboard entry point.
func DashboardPath(role string) string {
	if role == session.RoleLibrarian {
		return LibrarianDashboardPath
	}
	return MemberDashboardPath
}
