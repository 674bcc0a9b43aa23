package views

import (
	"context"
	"fmt"
)

// TransactionsView is the librarian circulation screen: issue, return, and
// the overdue-books table.
type TransactionsView struct {
	View
}

func (v *TransactionsView) Issue(ctx context.Context, userBarcode, bookBarcode string) {
	if !v.Guard.RequireSession() {
		return
	}

	result, res, err := v.Client.Issue(ctx, userBarcode, bookBarcode)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Book issued successfully! Transaction ID: %d, due date: %s\n",
		result.TransactionID, result.DueDate)
}

// Return closes a loan by transaction ID. Any fine the server assessed is
// shown; the amount is computed there, only formatted here.
func (v *TransactionsView) Return(ctx context.Context, transactionID int64) {
	if !v.Guard.RequireSession() {
		return
	}

	result, res, err := v.Client.Return(ctx, transactionID)
	if v.failed(res, err) {
		return
	}

	fmt.Fprintf(v.Out, "Book returned successfully! Transaction ID: %d\n", result.TransactionID)
	if result.FineAmount > 0 {
		fmt.Fprintf(v.Out, "Fine amount: $%.2f\n", result.FineAmount)
	}
}

func (v *TransactionsView) CancelReservation(ctx context.Context, reservationID int64) {
	if !v.Guard.RequireSession() {
		return
	}

	res, err := v.Client.CancelReservation(ctx, reservationID)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintln(v.Out, "Reservation cancelled successfully.")
}

func (v *TransactionsView) Overdue(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	overdue, res, err := v.Client.OverdueBooks(ctx)
	if v.failed(res, err) {
		return
	}

	if len(overdue) == 0 {
		fmt.Fprintln(v.Out, "No overdue books found.")
		return
	}

	fmt.Fprintf(v.Out, "%-8s %-25s %-30s %-12s %-10s %s\n",
		"Txn", "User", "Book", "Due", "Days late", "Fine")
	rule(v.Out, 100)
	for _, o := range overdue {
		fmt.Fprintf(v.Out, "%-8d %-25s %-30s %-12s %-10d $%.2f\n",
			o.TransactionID,
			truncate(o.UserName, 25),
			truncate(o.BookTitle, 30),
			o.DueDate,
			o.DaysOverdue,
			o.FineAmount)
	}
}
