package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shelfctl/internal/api"
	"shelfctl/internal/config"
	"shelfctl/internal/guard"
	"shelfctl/internal/log"
	"shelfctl/internal/session"
	"shelfctl/internal/views"
)

// app carries the wired-up dependencies every command shares.
type app struct {
	cfg    *config.AppConfig
	logger zerolog.Logger
	store  session.Store
	client *api.Client
	guard  *guard.Guard
}

func (a *app) view() views.View {
	return views.View{
		Client: a.client,
		Guard:  a.guard,
		Out:    os.Stdout,
		Status: os.Stderr,
		Logger: a.logger,
	}
}

// loginNavigator is the CLI stand-in for the browser's redirect to /login:
// it tells the user where to go and the command stops on its own.
type loginNavigator struct{}

func (loginNavigator) ToLogin(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprintln(os.Stderr, "Run `shelfctl login` to start a session.")
}

func newRootCommand() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: log.New(os.Stderr, cfg.Verbose),
		store:  session.NewFileStore(cfg.Session.Path),
	}
	a.client = api.NewClient(cfg.Server.URL, cfg.Server.Timeout, a.store, a.logger)
	a.guard = guard.New(a.store, loginNavigator{}, a.logger)
	a.client.SetUnauthorizedHandler(a.guard.OnUnauthorized)

	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Command-line client for the library management server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newDashboardCommand(a),
		newBooksCommand(a),
		newSearchCommand(a),
		newUsersCommand(a),
		newIssueCommand(a),
		newReturnCommand(a),
		newRenewCommand(a),
		newReserveCommand(a),
		newCancelReservationCommand(a),
		newOverdueCommand(a),
		newBorrowingsCommand(a),
		newHistoryCommand(a),
	)

	return root, nil
}
