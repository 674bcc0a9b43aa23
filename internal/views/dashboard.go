package views

import (
	"context"
	"fmt"
	"time"

	"shelfctl/internal/api"
)

const dueDateLayout = "2006-01-02"

// DashboardView renders the role landing screens: aggregate stats for
// librarians, personal loan counts for members.
type DashboardView struct {
	View
}

// Librarian shows the catalog, member, and overdue totals. The books
// endpoint may answer with the aggregate stats object directly; when it
// sends the list instead, the totals are computed here like the original
// screen did.
func (v *DashboardView) Librarian(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintf(v.Out, "Librarian Dashboard — %s\n\n", user.Name)

	catalog, res, err := v.Client.ListBooks(ctx)
	if v.failed(res, err) {
		return
	}
	total, available := catalogCounts(catalog)
	fmt.Fprintf(v.Out, "Total books:     %d\n", total)
	fmt.Fprintf(v.Out, "Available books: %d\n", available)

	users, res, err := v.Client.ListUsers(ctx)
	if v.failed(res, err) {
		return
	}
	members := 0
	for _, u := range users {
		if u.Role == "Member" {
			members++
		}
	}
	fmt.Fprintf(v.Out, "Members:         %d\n", members)

	overdue, res, err := v.Client.OverdueBooks(ctx)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintf(v.Out, "Overdue books:   %d\n", len(overdue))
}

func catalogCounts(catalog api.Catalog) (total, available int) {
	if catalog.Stats != nil {
		return catalog.Stats.TotalBooks, catalog.Stats.AvailableBooks
	}
	total = len(catalog.Books)
	for _, b := range catalog.Books {
		available += b.AvailableCopies
	}
	return total, available
}

// Member shows the logged-in member's loan counts: everything out, what is
// due within three days, and what is already overdue.
func (v *DashboardView) Member(ctx context.Context) {
	if !v.Guard.RequireSession() {
		return
	}

	user, res, err := v.Client.CurrentUser(ctx)
	if v.failed(res, err) {
		return
	}
	fmt.Fprintf(v.Out, "Member Dashboard — %s\n\n", user.Name)

	borrowings, res, err := v.Client.Borrowings(ctx, user.Barcode)
	if v.failed(res, err) {
		return
	}

	borrowed, dueSoon, overdue := loanCounts(borrowings, time.Now())
	fmt.Fprintf(v.Out, "Books borrowed: %d\n", borrowed)
	fmt.Fprintf(v.Out, "Due soon:       %d\n", dueSoon)
	fmt.Fprintf(v.Out, "Overdue:        %d\n", overdue)
}

func loanCounts(borrowings []api.Borrowing, now time.Time) (borrowed, dueSoon, overdue int) {
	borrowed = len(borrowings)
	threshold := now.AddDate(0, 0, 3)

	for _, b := range borrowings {
		due, err := time.Parse(dueDateLayout, b.DueDate)
		if err != nil {
			continue
		}
		if due.Before(now) {
			overdue++
		} else if !due.After(threshold) {
			dueSoon++
		}
	}
	return borrowed, dueSoon, overdue
}
