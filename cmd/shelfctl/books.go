package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"shelfctl/internal/api"
	"shelfctl/internal/views"
)

func newBooksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
	}

	cmd.AddCommand(
		newBooksListCommand(a),
		newBooksGetCommand(a),
		newBooksAddCommand(a),
		newBooksUpdateCommand(a),
		newBooksDeleteCommand(a),
		newCopiesCommand(a),
	)
	return cmd
}

func newBooksListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.List(cmd.Context())
			return nil
		},
	}
}

func newBooksGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <barcode>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.Details(cmd.Context(), args[0])
			return nil
		},
	}
}

func bookInputFlags(cmd *cobra.Command, in *api.BookInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "book title")
	cmd.Flags().StringVar(&in.Author, "author", "", "author")
	cmd.Flags().StringVar(&in.SubjectCategory, "category", "", "subject category")
	cmd.Flags().StringVar(&in.PublicationDate, "published", "", "publication date (YYYY-MM-DD)")
}

func newBooksAddCommand(a *app) *cobra.Command {
	var in api.BookInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.Add(cmd.Context(), in)
			return nil
		},
	}

	bookInputFlags(cmd, &in)
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")
	return cmd
}

func newBooksUpdateCommand(a *app) *cobra.Command {
	var in api.BookInput

	cmd := &cobra.Command{
		Use:   "update <barcode>",
		Short: "Update a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.Update(cmd.Context(), args[0], in)
			return nil
		},
	}

	bookInputFlags(cmd, &in)
	return cmd
}

func newBooksDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <barcode>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.Delete(cmd.Context(), args[0])
			return nil
		},
	}
}

func newCopiesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copies",
		Short: "Manage physical copies of a book",
	}

	list := &cobra.Command{
		Use:   "list <barcode>",
		Short: "List copies of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.ListCopies(cmd.Context(), args[0])
			return nil
		},
	}

	var rack string
	add := &cobra.Command{
		Use:   "add <barcode>",
		Short: "Add a copy of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := views.BooksView{View: a.view()}
			v.AddCopy(cmd.Context(), args[0], rack)
			return nil
		},
	}
	add.Flags().StringVar(&rack, "rack", "", "rack location")

	var updateRack string
	var available bool
	update := &cobra.Command{
		Use:   "update <barcode> <copy-id>",
		Short: "Update a copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			var in api.CopyUpdate
			if cmd.Flags().Changed("rack") {
				in.RackLocation = &updateRack
			}
			if cmd.Flags().Changed("available") {
				in.IsAvailable = &available
			}

			v := views.BooksView{View: a.view()}
			v.UpdateCopy(cmd.Context(), args[0], copyID, in)
			return nil
		},
	}
	update.Flags().StringVar(&updateRack, "rack", "", "rack location")
	update.Flags().BoolVar(&available, "available", false, "availability")

	del := &cobra.Command{
		Use:   "delete <barcode> <copy-id>",
		Short: "Delete a copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			v := views.BooksView{View: a.view()}
			v.DeleteCopy(cmd.Context(), args[0], copyID)
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
