package main

import (
	"github.com/spf13/cobra"

	"shelfctl/internal/session"
	"shelfctl/internal/views"
)

// newDashboardCommand renders the dashboard the stored role points at, the
// same routing the server's dashboard redirect applies.
func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.DashboardView{View: a.view()}

			sess, err := a.store.Load()
			if err != nil {
				return err
			}
			if sess.Role == session.RoleLibrarian {
				v.Librarian(cmd.Context())
			} else {
				v.Member(cmd.Context())
			}
			return nil
		},
	}
}
