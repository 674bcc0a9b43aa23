package views

import (
	"context"
	"fmt"

	"shelfctl/internal/api"
)

// MyBooksView is the member's loan screen: current borrowings with return
// and renew, plus the full borrowing history.
type MyBooksView struct {
	View
}

func (v *MyBooksView) Borrowings(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}

	loans, res, err := v.Client.Borrowings(ctx, user.Barcode)
	if v.failed(res, err) {
		return
	}

	if len(loans) == 0 {
		fmt.Fprintln(v.Out, "You have no books checked out.")
		return
	}
	v.renderLoans(loans, false)
}

func (v *MyBooksView) History(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}

	loans, res, err := v.Client.BorrowingHistory(ctx, user.Barcode)
	if v.failed(res, err) {
		return
	}

	if len(loans) == 0 {
		fmt.Fprintln(v.Out, "No borrowing history.")
		return
	}
	v.renderLoans(loans, true)
}

func (v *MyBooksView) renderLoans(loans []api.Borrowing, withHistory bool) {
	if withHistory {
		fmt.Fprintf(v.Out, "%-8s %-30s %-12s %-12s %-12s %s\n",
			"Txn", "Title", "Checked out", "Due", "Returned", "Fine")
		rule(v.Out, 90)
	} else {
		fmt.Fprintf(v.Out, "%-8s %-30s %-12s %s\n", "Txn", "Title", "Checked out", "Due")
		rule(v.Out, 70)
	}

	for _, l := range loans {
		if withHistory {
			returned := l.ReturnDate
			if returned == "" {
				returned = "-"
			}
			fmt.Fprintf(v.Out, "%-8d %-30s %-12s %-12s %-12s $%.2f\n",
				l.TransactionID, truncate(l.BookTitle, 30),
				l.CheckoutDate, l.DueDate, returned, l.FineAmount)
		} else {
			fmt.Fprintf(v.Out, "%-8d %-30s %-12s %s\n",
				l.TransactionID, truncate(l.BookTitle, 30), l.CheckoutDate, l.DueDate)
		}
	}
}

// Return lets the member hand a book back by transaction ID.
func (v *MyBooksView) Return(ctx context.Context, transactionID int64) {
	if !v.Guard.RequireSession() {
		return
	}

	result, res, err := v.Client.Return(ctx, transactionID)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintln(v.Out, "Book returned successfully!")
	if result.FineAmount > 0 {
		fmt.Fprintf(v.Out, "Fine amount: $%.2f\n", result.FineAmount)
	}
}

// Renew extends a loan that is not yet overdue by another loan period.
func (v *MyBooksView) Renew(ctx context.Context, transactionID int64) {
	if !v.Guard.RequireSession() {
		return
	}

	result, res, err := v.Client.Renew(ctx, transactionID)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Book renewed successfully! New due date: %s\n", result.NewDueDate)
}
