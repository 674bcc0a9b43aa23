package views

import (
	"context"
	"fmt"

	"shelfctl/internal/api"
)

// BooksView is the librarian's book-management screen: the catalog table and
// the add/update/delete operations, plus per-book copy management.
type BooksView struct {
	View
}

func (v *BooksView) List(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	catalog, res, err := v.Client.ListBooks(ctx)
	if v.failed(res, err) {
		return
	}

	if catalog.Stats != nil {
		fmt.Fprintf(v.Out, "Total books: %d, available: %d\n",
			catalog.Stats.TotalBooks, catalog.Stats.AvailableBooks)
		return
	}
	v.renderBooks(catalog.Books)
}

func (v *BooksView) renderBooks(books []api.Book) {
	if len(books) == 0 {
		fmt.Fprintln(v.Out, "No books found.")
		return
	}

	fmt.Fprintf(v.Out, "%-12s %-30s %-25s %-20s %-12s %s\n",
		"Barcode", "Title", "Author", "Category", "Published", "Copies")
	rule(v.Out, 110)

	for _, b := range books {
		fmt.Fprintf(v.Out, "%-12s %-30s %-25s %-20s %-12s %d/%d\n",
			b.Barcode,
			truncate(b.Title, 30),
			truncate(b.Author, 25),
			truncate(b.SubjectCategory, 20),
			b.PublicationDate,
			b.AvailableCopies,
			b.TotalCopies)
	}
}

func (v *BooksView) Details(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	book, res, err := v.Client.GetBook(ctx, barcode)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Title:            %s\n", book.Title)
	fmt.Fprintf(v.Out, "Author:           %s\n", book.Author)
	fmt.Fprintf(v.Out, "Category:         %s\n", book.SubjectCategory)
	fmt.Fprintf(v.Out, "Publication date: %s\n", book.PublicationDate)
	fmt.Fprintf(v.Out, "Available copies: %d/%d\n", book.AvailableCopies, book.TotalCopies)
	fmt.Fprintf(v.Out, "Barcode:          %s\n", book.Barcode)
}

func (v *BooksView) Add(ctx context.Context, in api.BookInput) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.AddBook(ctx, in)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book added successfully.")
}

func (v *BooksView) Update(ctx context.Context, barcode string, in api.BookInput) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.UpdateBook(ctx, barcode, in)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book updated successfully.")
}

func (v *BooksView) Delete(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.DeleteBook(ctx, barcode)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book deleted successfully.")
}

func (v *BooksView) ListCopies(ctx context.Context, barcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	copies, res, err := v.Client.ListCopies(ctx, barcode)
	if v.failed(res, err) {
		return
	}

	if len(copies) == 0 {
		fmt.Fprintln(v.Out, "No copies found.")
		return
	}

	fmt.Fprintf(v.Out, "%-8s %-20s %s\n", "ID", "Rack", "Available")
	rule(v.Out, 40)
	for _, c := range copies {
		avail := "No"
		if c.IsAvailable {
			avail = "Yes"
		}
		fmt.Fprintf(v.Out, "%-8d %-20s %s\n", c.ID, truncate(c.RackLocation, 20), avail)
	}
}

func (v *BooksView) AddCopy(ctx context.Context, barcode, rackLocation string) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.AddCopy(ctx, barcode, rackLocation)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book copy created successfully.")
}

func (v *BooksView) UpdateCopy(ctx context.Context, barcode string, copyID int64, in api.CopyUpdate) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.UpdateCopy(ctx, barcode, copyID, in)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book copy modified successfully.")
}

func (v *BooksView) DeleteCopy(ctx context.Context, barcode string, copyID int64) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.DeleteCopy(ctx, barcode, copyID)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Book copy deleted successfully.")
}
