// Package guard gates protected screens on a live session and reacts
// uniformly when the server says the session is gone.
package guard

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"shelfctl/internal/session"
)

// Navigator is where the guard sends the user when no session can be
// trusted. The CLI implementation prints the login instruction and the
// command stops; tests record the call.
type Navigator interface {
	ToLogin(reason string)
}

type Guard struct {
	store  session.Store
	nav    Navigator
	logger zerolog.Logger

	// redirected latches after the first unauthorized navigation so two
	// in-flight 401s produce exactly one.
	redirected atomic.Bool
}

func New(store session.Store, nav Navigator, logger zerolog.Logger) *Guard {
	return &Guard{store: store, nav: nav, logger: logger}
}

// RequireSession must run before a protected screen does anything else.
// A false return means the user was sent to login and the screen must not
// issue requests or render.
func (g *Guard) RequireSession() bool {
	if g.store.IsAuthenticated() {
		return true
	}
	g.nav.ToLogin("You are not logged in.")
	return false
}

// OnUnauthorized handles a 401 from any request: the session is cleared and
// the user sent to login, at most once per process no matter how many
// requests fail.
func (g *Guard) OnUnauthorized() {
	if !g.redirected.CompareAndSwap(false, true) {
		return
	}

	if err := g.store.Clear(); err != nil {
		g.logger.Warn().Err(err).Msg("clear session after 401")
	}
	g.nav.ToLogin("Your session has expired. Please log in again.")
}

// Logout is the user-triggered equivalent of OnUnauthorized, minus the
// triggering error and the one-shot latch.
func (g *Guard) Logout() error {
	if err := g.store.Clear(); err != nil {
		return err
	}
	g.nav.ToLogin("Logged out.")
	return nil
}
