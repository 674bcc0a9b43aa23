package views

import (
	"context"
	"fmt"

	"shelfctl/internal/api"
)

// UsersView is the librarian's user-management screen.
type UsersView struct {
	View
}

func (v *UsersView) List(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	users, res, err := v.Client.ListUsers(ctx)
	if v.failed(res, err) {
		return
	}
	v.renderUsers(users)
}

func (v *UsersView) renderUsers(users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(v.Out, "No users found.")
		return
	}

	fmt.Fprintf(v.Out, "%-12s %-25s %-30s %s\n", "Barcode", "Name", "Email", "Role")
	rule(v.Out, 80)
	for _, u := range users {
		fmt.Fprintf(v.Out, "%-12s %-25s %-30s %s\n",
			u.Barcode,
			truncate(u.Name, 25),
			truncate(u.Email, 30),
			u.Role)
	}
}

func (v *UsersView) Details(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.GetUserByBarcode(ctx, barcode)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Name:    %s\n", user.Name)
	fmt.Fprintf(v.Out, "Email:   %s\n", user.Email)
	fmt.Fprintf(v.Out, "Role:    %s\n", user.Role)
	fmt.Fprintf(v.Out, "Barcode: %s\n", user.Barcode)
}

// Delete removes a user. Librarian deletion is refused server-side and that
// message is shown verbatim.
func (v *UsersView) Delete(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.DeleteUser(ctx, barcode)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "User deleted successfully.")
}

func (v *UsersView) Notifications(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	notes, res, err := v.Client.Notifications(ctx, barcode)
	if v.failed(res, err) {
		return
	}

	if len(notes) == 0 {
		fmt.Fprintln(v.Out, "No notifications.")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(v.Out, "%s\n  %s\n", n.Subject, n.Body)
	}
}
