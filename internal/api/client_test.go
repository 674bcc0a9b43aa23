package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"shelfctl/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, sess session.Session) (*Client, *session.MemoryStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	if !sess.IsZero() {
		if err := store.Save(sess); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	return NewClient(srv.URL, 5*time.Second, store, zerolog.Nop()), store
}

func authedSession() session.Session {
	return session.Session{AccessToken: "tok-123", RefreshToken: "ref-456", Role: session.RoleMember}
}

func TestMissingSessionShortCircuits(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the network without a session")
	})
	client, _ := newTestClient(t, handler, session.Session{})

	_, err := client.Do(context.Background(), Descriptor{
		Method:       http.MethodGet,
		Path:         "/api/books",
		RequiresAuth: true,
	})
	if err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Error("missing request id header")
		}
		w.WriteHeader(http.StatusOK)
	})
	client, _ := newTestClient(t, handler, authedSession())

	res, err := client.Do(context.Background(), Descriptor{
		Method:       http.MethodPost,
		Path:         "/api/issue",
		Body:         map[string]string{"user_barcode": "U1"},
		RequiresAuth: true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected ok, got status %d", res.Status)
	}
}

func TestNoAuthHeaderWithoutRequiresAuth(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})
	client, _ := newTestClient(t, handler, authedSession())

	if _, err := client.Do(context.Background(), Descriptor{
		Method: http.MethodPost,
		Path:   "/auth/login",
	}); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		fallback string
		wantOK   bool
		wantMsg  string
	}{
		{"ok 200", 200, `{"books":[]}`, "", true, ""},
		{"ok 201", 201, `{"message":"created"}`, "", true, ""},
		{"ok 204 empty", 204, ``, "", true, ""},
		{"error field wins", 400, `{"error":"no copies available"}`, "Failed to checkout", false, "no copies available"},
		{"fallback when no error field", 404, `{}`, "Book not found", false, "Book not found"},
		{"module default", 500, `garbage{`, "", false, defaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client, _ := newTestClient(t, handler, authedSession())

			res, err := client.Do(context.Background(), Descriptor{
				Method:        http.MethodGet,
				Path:          "/api/books",
				RequiresAuth:  true,
				ErrorFallback: tt.fallback,
			})
			if err != nil {
				t.Fatalf("do: %v", err)
			}
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", res.OK, tt.wantOK)
			}
			if res.Status != tt.status {
				t.Errorf("Status = %d, want %d", res.Status, tt.status)
			}
			if res.ErrorMessage != tt.wantMsg {
				t.Errorf("ErrorMessage = %q, want %q", res.ErrorMessage, tt.wantMsg)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	store := session.NewMemoryStore()
	store.Save(authedSession())
	client := NewClient(srv.URL, time.Second, store, zerolog.Nop())

	res, err := client.Do(context.Background(), Descriptor{
		Method:       http.MethodGet,
		Path:         "/api/books",
		RequiresAuth: true,
	})
	if err != nil {
		t.Fatalf("transport failure must not surface as error, got %v", err)
	}
	if res.OK || res.Status != 0 {
		t.Fatalf("expected ok=false status=0, got ok=%v status=%d", res.OK, res.Status)
	}
	if res.ErrorMessage != transportErrorMessage {
		t.Fatalf("ErrorMessage = %q", res.ErrorMessage)
	}
}

func TestMalformedBodyReadsAsEmptyObject(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	})
	client, _ := newTestClient(t, handler, authedSession())

	res, err := client.Do(context.Background(), Descriptor{
		Method:       http.MethodGet,
		Path:         "/api/books",
		RequiresAuth: true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if !res.OK {
		t.Fatalf("2xx with bad body is still ok, got status %d", res.Status)
	}
	if string(res.Body) != "{}" {
		t.Fatalf("Body = %q, want empty object", res.Body)
	}
}

func TestUnauthorizedInvokesHandlerAndStillReturns(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})
	client, _ := newTestClient(t, handler, authedSession())

	var calls atomic.Int64
	client.SetUnauthorizedHandler(func() { calls.Add(1) })

	res, err := client.Do(context.Background(), Descriptor{
		Method:       http.MethodGet,
		Path:         "/api/books",
		RequiresAuth: true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("handler calls = %d, want 1", calls.Load())
	}
	if res.OK {
		t.Fatal("401 must not be ok")
	}
	if res.ErrorMessage != "token expired" {
		t.Fatalf("ErrorMessage = %q", res.ErrorMessage)
	}
}

func TestUnauthorizedOnUnauthenticatedCallSkipsHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	})
	client, _ := newTestClient(t, handler, session.Session{})

	var calls atomic.Int64
	client.SetUnauthorizedHandler(func() { calls.Add(1) })

	res, err := client.Do(context.Background(), Descriptor{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": "bob@example.com", "password": "wrong"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("handler calls = %d, want 0", calls.Load())
	}
	if res.OK || res.ErrorMessage != "Invalid credentials" {
		t.Fatalf("got ok=%v msg=%q", res.OK, res.ErrorMessage)
	}
}

func TestBaseURLNormalization(t *testing.T) {
	store := session.NewMemoryStore()

	client := NewClient("127.0.0.1:5000", time.Second, store, zerolog.Nop())
	if client.baseURL != "http://127.0.0.1:5000" {
		t.Errorf("baseURL = %q", client.baseURL)
	}

	client = NewClient("https://library.example.com/", time.Second, store, zerolog.Nop())
	if client.baseURL != "https://library.example.com" {
		t.Errorf("baseURL = %q", client.baseURL)
	}
}
