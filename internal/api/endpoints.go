package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Book is a catalog entry with its copy availability counts.
type Book struct {
	ID              int64  `json:"id"`
	Barcode         string `json:"barcode"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	SubjectCategory string `json:"subject_category"`
	PublicationDate string `json:"publication_date"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
}

// BookInput is the payload for adding or updating a catalog entry.
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	SubjectCategory string `json:"subject_category"`
	PublicationDate string `json:"publication_date"`
}

// BookCopy is a physical copy of a catalog entry.
type BookCopy struct {
	ID           int64  `json:"id"`
	RackLocation string `json:"rack_location"`
	IsAvailable  bool   `json:"is_available"`
}

// CopyUpdate carries the mutable copy fields. Pointers distinguish "leave
// unchanged" from an explicit value, matching the server's partial update.
type CopyUpdate struct {
	RackLocation *string `json:"rack_location,omitempty"`
	IsAvailable  *bool   `json:"is_available,omitempty"`
}

// CatalogStats is the aggregate form some deployments return from the books
// endpoint instead of the full list.
type CatalogStats struct {
	TotalBooks     int `json:"total_books"`
	AvailableBooks int `json:"available_books"`
}

// Catalog is the normalized books response: either the full list or the
// aggregate counts, whichever the server sent.
type Catalog struct {
	Books []Book
	Stats *CatalogStats
}

// BookQuery is the multi-field search filter. Empty fields are omitted.
type BookQuery struct {
	Title           string
	Author          string
	SubjectCategory string
	Barcode         string
}

func (q BookQuery) values() url.Values {
	v := url.Values{}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	if q.Author != "" {
		v.Set("author", q.Author)
	}
	if q.SubjectCategory != "" {
		v.Set("subject_category", q.SubjectCategory)
	}
	if q.Barcode != "" {
		v.Set("barcode", q.Barcode)
	}
	return v
}

// IsEmpty reports whether no filter field is set.
func (q BookQuery) IsEmpty() bool {
	return q.Title == "" && q.Author == "" && q.SubjectCategory == "" && q.Barcode == ""
}

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Barcode string `json:"barcode"`
}

type Notification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// LoginResult is the token triple the auth endpoint hands out.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// IssueResult covers issue and checkout responses.
type IssueResult struct {
	TransactionID int64  `json:"transaction_id"`
	DueDate       string `json:"due_date"`
}

type ReturnResult struct {
	TransactionID int64   `json:"transaction_id"`
	FineAmount    float64 `json:"fine_amount"`
	Message       string  `json:"message"`
}

type RenewResult struct {
	NewDueDate string `json:"new_due_date"`
}

type ReserveResult struct {
	ReservationID int64 `json:"reservation_id"`
}

type OverdueBook struct {
	TransactionID int64   `json:"transaction_id"`
	UserName      string  `json:"user_name"`
	UserEmail     string  `json:"user_email"`
	BookTitle     string  `json:"book_title"`
	DaysOverdue   int     `json:"days_overdue"`
	FineAmount    float64 `json:"fine_amount"`
	DueDate       string  `json:"due_date"`
}

// Borrowing is one loan record, current or historical. ReturnDate is empty
// for active loans.
type Borrowing struct {
	TransactionID int64   `json:"transaction_id"`
	BookTitle     string  `json:"book_title"`
	CheckoutDate  string  `json:"checkout_date"`
	DueDate       string  `json:"due_date"`
	ReturnDate    string  `json:"return_date"`
	FineAmount    float64 `json:"fine_amount"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
		ErrorFallback: "Login failed",
	})
	if err != nil || !res.OK {
		return LoginResult{}, res, err
	}

	var out LoginResult
	if err := res.Decode(&out); err != nil {
		return LoginResult{}, res, err
	}
	return out, res, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Body:          in,
		ErrorFallback: "Registration failed",
	})
}

// ListBooks fetches the catalog. The response is normalized into either the
// book list or the aggregate stats, depending on what the server returned.
func (c *Client) ListBooks(ctx context.Context) (Catalog, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/books",
		RequiresAuth:  true,
		ErrorFallback: "Failed to load books",
	})
	if err != nil || !res.OK {
		return Catalog{}, res, err
	}

	var probe map[string]json.RawMessage
	if err := res.Decode(&probe); err == nil {
		if _, ok := probe["total_books"]; ok {
			var stats CatalogStats
			if err := res.Decode(&stats); err == nil {
				return Catalog{Stats: &stats}, res, nil
			}
		}
	}

	var books []Book
	DecodeList(c.logger, res.Body, "books", &books)
	return Catalog{Books: books}, res, nil
}

func (c *Client) GetBook(ctx context.Context, barcode string) (Book, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/books/" + url.PathEscape(barcode),
		RequiresAuth:  true,
		ErrorFallback: "Book not found",
	})
	if err != nil || !res.OK {
		return Book{}, res, err
	}

	var out Book
	if err := res.Decode(&out); err != nil {
		return Book{}, res, err
	}
	return out, res, nil
}

func (c *Client) AddBook(ctx context.Context, in BookInput) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPost,
		Path:          "/api/books",
		Body:          in,
		RequiresAuth:  true,
		ErrorFallback: "Failed to add book",
	})
}

func (c *Client) UpdateBook(ctx context.Context, barcode string, in BookInput) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPut,
		Path:          "/api/books/" + url.PathEscape(barcode),
		Body:          in,
		RequiresAuth:  true,
		ErrorFallback: "Failed to update book",
	})
}

func (c *Client) DeleteBook(ctx context.Context, barcode string) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodDelete,
		Path:          "/api/books/" + url.PathEscape(barcode),
		RequiresAuth:  true,
		ErrorFallback: "Failed to delete book",
	})
}

func (c *Client) ListCopies(ctx context.Context, barcode string) ([]BookCopy, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/book_copies/" + url.PathEscape(barcode),
		RequiresAuth:  true,
		ErrorFallback: "Failed to load book copies",
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var copies []BookCopy
	DecodeList(c.logger, res.Body, "book_copies", &copies)
	return copies, res, nil
}

func (c *Client) AddCopy(ctx context.Context, barcode, rackLocation string) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPost,
		Path:          "/api/book_copies/" + url.PathEscape(barcode),
		Body:          map[string]string{"rack_location": rackLocation},
		RequiresAuth:  true,
		ErrorFallback: "Failed to add book copy",
	})
}

func (c *Client) UpdateCopy(ctx context.Context, barcode string, copyID int64, in CopyUpdate) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPut,
		Path:          fmt.Sprintf("/api/book_copies/%s/%d", url.PathEscape(barcode), copyID),
		Body:          in,
		RequiresAuth:  true,
		ErrorFallback: "Failed to update book copy",
	})
}

func (c *Client) DeleteCopy(ctx context.Context, barcode string, copyID int64) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodDelete,
		Path:          fmt.Sprintf("/api/book_copies/%s/%d", url.PathEscape(barcode), copyID),
		RequiresAuth:  true,
		ErrorFallback: "Failed to delete book copy",
	})
}

func (c *Client) SearchBooks(ctx context.Context, q BookQuery) ([]Book, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/search/books",
		Query:         q.values(),
		RequiresAuth:  true,
		ErrorFallback: "Search failed",
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var books []Book
	DecodeList(c.logger, res.Body, "books", &books)
	return books, res, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/users",
		RequiresAuth:  true,
		ErrorFallback: "Failed to load users",
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var users []User
	DecodeList(c.logger, res.Body, "users", &users)
	return users, res, nil
}

func (c *Client) GetUserByBarcode(ctx context.Context, barcode string) (User, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/users/barcode/" + url.PathEscape(barcode),
		RequiresAuth:  true,
		ErrorFallback: "User not found",
	})
	if err != nil || !res.OK {
		return User{}, res, err
	}

	var out User
	if err := res.Decode(&out); err != nil {
		return User{}, res, err
	}
	return out, res, nil
}

// DeleteUser removes a user by barcode. The barcode travels in the request
// body, not the path; that is the server's contract.
func (c *Client) DeleteUser(ctx context.Context, barcode string) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodDelete,
		Path:          "/api/users",
		Body:          map[string]string{"barcode": barcode},
		RequiresAuth:  true,
		ErrorFallback: "Failed to delete user",
	})
}

func (c *Client) Notifications(ctx context.Context, barcode string) ([]Notification, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/users/" + url.PathEscape(barcode) + "/notifications",
		RequiresAuth:  true,
		ErrorFallback: "Failed to load notifications",
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var notes []Notification
	DecodeList(c.logger, res.Body, "notifications", &notes)
	return notes, res, nil
}

func (c *Client) CurrentUser(ctx context.Context) (User, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/dashboard/get-current-user",
		RequiresAuth:  true,
		ErrorFallback: "Failed to load user information",
	})
	if err != nil || !res.OK {
		return User{}, res, err
	}

	var out User
	if err := res.Decode(&out); err != nil {
		return User{}, res, err
	}
	return out, res, nil
}

// Issue checks a book out to a user on the librarian's authority.
func (c *Client) Issue(ctx context.Context, userBarcode, bookBarcode string) (IssueResult, Result, error) {
	return c.circulate(ctx, "/api/issue", userBarcode, bookBarcode, "Failed to issue book")
}

// Checkout is the member-facing equivalent of Issue.
func (c *Client) Checkout(ctx context.Context, userBarcode, bookBarcode string) (IssueResult, Result, error) {
	return c.circulate(ctx, "/api/checkout", userBarcode, bookBarcode, "Failed to checkout book")
}

func (c *Client) circulate(ctx context.Context, path, userBarcode, bookBarcode, fallback string) (IssueResult, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   path,
		Body: map[string]string{
			"user_barcode": userBarcode,
			"book_barcode": bookBarcode,
		},
		RequiresAuth:  true,
		ErrorFallback: fallback,
	})
	if err != nil || !res.OK {
		return IssueResult{}, res, err
	}

	var out IssueResult
	if err := res.Decode(&out); err != nil {
		return IssueResult{}, res, err
	}
	return out, res, nil
}

func (c *Client) Return(ctx context.Context, transactionID int64) (ReturnResult, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodPut,
		Path:          fmt.Sprintf("/api/return/%d", transactionID),
		RequiresAuth:  true,
		ErrorFallback: "Failed to return book",
	})
	if err != nil || !res.OK {
		return ReturnResult{}, res, err
	}

	var out ReturnResult
	if err := res.Decode(&out); err != nil {
		return ReturnResult{}, res, err
	}
	return out, res, nil
}

func (c *Client) Reserve(ctx context.Context, userBarcode, bookBarcode string) (ReserveResult, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/reserve",
		Body: map[string]string{
			"user_barcode": userBarcode,
			"book_barcode": bookBarcode,
		},
		RequiresAuth:  true,
		ErrorFallback: "Failed to reserve book",
	})
	if err != nil || !res.OK {
		return ReserveResult{}, res, err
	}

	var out ReserveResult
	if err := res.Decode(&out); err != nil {
		return ReserveResult{}, res, err
	}
	return out, res, nil
}

func (c *Client) CancelReservation(ctx context.Context, reservationID int64) (Result, error) {
	return c.Do(ctx, Descriptor{
		Method:        http.MethodPut,
		Path:          fmt.Sprintf("/api/cancel-reservation/%d", reservationID),
		RequiresAuth:  true,
		ErrorFallback: "Failed to cancel reservation",
	})
}

func (c *Client) Renew(ctx context.Context, transactionID int64) (RenewResult, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodPut,
		Path:          fmt.Sprintf("/api/renew/%d", transactionID),
		RequiresAuth:  true,
		ErrorFallback: "Failed to renew book",
	})
	if err != nil || !res.OK {
		return RenewResult{}, res, err
	}

	var out RenewResult
	if err := res.Decode(&out); err != nil {
		return RenewResult{}, res, err
	}
	return out, res, nil
}

func (c *Client) OverdueBooks(ctx context.Context) ([]OverdueBook, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          "/api/overdue-books",
		RequiresAuth:  true,
		ErrorFallback: "Failed to load overdue books",
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var overdue []OverdueBook
	DecodeList(c.logger, res.Body, "overdue_books", &overdue)
	return overdue, res, nil
}

// Borrowings lists a user's active loans.
func (c *Client) Borrowings(ctx context.Context, userBarcode string) ([]Borrowing, Result, error) {
	return c.loans(ctx, "/api/users/"+url.PathEscape(userBarcode)+"/borrowings",
		"checked_out_books", "Failed to load borrowings")
}

// BorrowingHistory lists every loan the user ever had, returned or not.
func (c *Client) BorrowingHistory(ctx context.Context, userBarcode string) ([]Borrowing, Result, error) {
	return c.loans(ctx, "/api/users/"+url.PathEscape(userBarcode)+"/borrowing-history",
		"borrowing_history", "Failed to load borrowing history")
}

func (c *Client) loans(ctx context.Context, path, field, fallback string) ([]Borrowing, Result, error) {
	res, err := c.Do(ctx, Descriptor{
		Method:        http.MethodGet,
		Path:          path,
		RequiresAuth:  true,
		ErrorFallback: fallback,
	})
	if err != nil || !res.OK {
		return nil, res, err
	}

	var loans []Borrowing
	DecodeList(c.logger, res.Body, field, &loans)
	return loans, res, nil
}
