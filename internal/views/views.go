// Package views holds the screen controllers. Each screen checks the session
// guard before doing anything, routes every call through the api client, and
// renders failures into its status writer instead of letting them escape.
package views

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"shelfctl/internal/api"
	"shelfctl/internal/guard"
)

// View is the shared wiring every screen embeds. Out receives rendered
// tables; Status is the screen's status area.
type View struct {
	Client *api.Client
	Guard  *guard.Guard
	Out    io.Writer
	Status io.Writer
	Logger zerolog.Logger
}

// failed reports whether the call did not produce a usable response, and
// renders the failure. A missing session routes to the guard's login
// navigation; everything else lands in the status area.
func (v *View) failed(res api.Result, err error) bool {
	if err != nil {
		if errors.Is(err, api.ErrNoSession) {
			v.Guard.RequireSession()
			return true
		}
		v.Logger.Debug().Err(err).Msg("request not sent")
		fmt.Fprintln(v.Status, "Error: Could not complete the request. Please try again later.")
		return true
	}
	if !res.OK {
		fmt.Fprintf(v.Status, "Error: %s\n", res.ErrorMessage)
		return true
	}
	return false
}

func truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("-", n))
}
