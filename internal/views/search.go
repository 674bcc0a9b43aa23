package views

import (
	"context"
	"fmt"

	"shelfctl/internal/api"
)

// SearchView is the member-facing book search with checkout. Each search
// takes a sequence token; a result that comes back after a newer search has
// started is dropped so stale rows never overwrite fresh ones.
type SearchView struct {
	View
	seq sequencer
}

// Search runs a multi-field query. An empty query falls back to the full
// catalog, matching the original screen.
func (v *SearchView) Search(ctx context.Context, q api.BookQuery) {
	if !v.Guard.RequireSession() {
		return
	}

	token := v.seq.next()

	var books []api.Book
	if q.IsEmpty() {
		catalog, res, err := v.Client.ListBooks(ctx)
		if v.failed(res, err) {
			return
		}
		if catalog.Stats != nil {
			if !v.seq.current(token) {
				return
			}
			fmt.Fprintf(v.Out, "Total books: %d, available: %d\n",
				catalog.Stats.TotalBooks, catalog.Stats.AvailableBooks)
			return
		}
		books = catalog.Books
	} else {
		var res api.Result
		var err error
		books, res, err = v.Client.SearchBooks(ctx, q)
		if v.failed(res, err) {
			return
		}
	}

	if !v.seq.current(token) {
		v.Logger.Debug().Uint64("token", token).Msg("discarding superseded search result")
		return
	}

	if len(books) == 0 {
		fmt.Fprintln(v.Out, "No books found matching your search criteria.")
		return
	}

	fmt.Fprintf(v.Out, "%-12s %-30s %-25s %-20s %s\n",
		"Barcode", "Title", "Author", "Category", "Available")
	rule(v.Out, 100)
	for _, b := range books {
		fmt.Fprintf(v.Out, "%-12s %-30s %-25s %-20s %d/%d\n",
			b.Barcode,
			truncate(b.Title, 30),
			truncate(b.Author, 25),
			truncate(b.SubjectCategory, 20),
			b.AvailableCopies,
			b.TotalCopies)
	}
}

// Request checks the book out to the current user, resolving the member's
// own barcode first like the browser screen did.
func (v *SearchView) Request(ctx context.Context, bookBarcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}

	result, res, err := v.Client.Checkout(ctx, user.Barcode, bookBarcode)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Book checkout successful! Due date: %s\n", result.DueDate)
}

// Reserve places a hold on a book with no available copies.
func (v *SearchView) Reserve(ctx context.Context, bookBarcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}

	result, res, err := v.Client.Reserve(ctx, user.Barcode, bookBarcode)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Book reserved successfully. Reservation ID: %d\n", result.ReservationID)
}
