package main

import (
	"github.com/spf13/cobra"

	"shelfctl/internal/views"
)

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage library users",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.UsersView{View: a.view()}
			v.List(cmd.Context())
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <barcode>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.UsersView{View: a.view()}
			v.Details(cmd.Context(), args[0])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <barcode>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.UsersView{View: a.view()}
			v.Delete(cmd.Context(), args[0])
			return nil
		},
	}

	notifications := &cobra.Command{
		Use:   "notifications <barcode>",
		Short: "Show a user's notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.UsersView{View: a.view()}
			v.Notifications(cmd.Context(), args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, del, notifications)
	return cmd
}
