package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"shelfctl/internal/api"
	"shelfctl/internal/views"
)

func newSearchCommand(a *app) *cobra.Command {
	var q api.BookQuery

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.SearchView{View: a.view()}
			v.Search(cmd.Context(), q)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Title, "title", "", "filter by title")
	cmd.Flags().StringVar(&q.Author, "author", "", "filter by author")
	cmd.Flags().StringVar(&q.SubjectCategory, "category", "", "filter by subject category")
	cmd.Flags().StringVar(&q.Barcode, "barcode", "", "filter by barcode")

	cmd.AddCommand(&cobra.Command{
		Use:   "request <book-barcode>",
		Short: "Check a book out to yourself",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.SearchView{View: a.view()}
			v.Request(cmd.Context(), args[0])
			return nil
		},
	})

	return cmd
}

func newReserveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <book-barcode>",
		Short: "Reserve a book with no available copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.SearchView{View: a.view()}
			v.Reserve(cmd.Context(), args[0])
			return nil
		},
	}
}

func newIssueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <user-barcode> <book-barcode>",
		Short: "Issue a book to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.TransactionsView{View: a.view()}
			v.Issue(cmd.Context(), args[0], args[1])
			return nil
		},
	}
}

func newReturnCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return <transaction-id>",
		Short: "Return a checked-out book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			v := views.TransactionsView{View: a.view()}
			v.Return(cmd.Context(), id)
			return nil
		},
	}
}

func newRenewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renew <transaction-id>",
		Short: "Renew a loan that is not overdue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			v := views.MyBooksView{View: a.view()}
			v.Renew(cmd.Context(), id)
			return nil
		},
	}
}

func newCancelReservationCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-reservation <reservation-id>",
		Short: "Cancel a pending reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			v := views.TransactionsView{View: a.view()}
			v.CancelReservation(cmd.Context(), id)
			return nil
		},
	}
}

func newOverdueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue books",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.TransactionsView{View: a.view()}
			v.Overdue(cmd.Context())
			return nil
		},
	}
}

func newBorrowingsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "borrowings",
		Short: "List your checked-out books",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.MyBooksView{View: a.view()}
			v.Borrowings(cmd.Context())
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your borrowing history",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.MyBooksView{View: a.view()}
			v.History(cmd.Context())
			return nil
		},
	}
}
