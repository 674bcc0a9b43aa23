package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shelfctl/internal/session"
	"shelfctl/internal/views"
)

// readPassword reads a masked password from the terminal.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(bytePassword)), nil
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = readPassword("Password: ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			v := views.AuthView{View: a.view(), Store: a.store}
			v.Login(cmd.Context(), email, password)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = readPassword(fmt.Sprintf("Password for %s: ", email))
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			v := views.AuthView{View: a.view(), Store: a.store}
			v.Register(cmd.Context(), name, email, password, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", session.RoleMember, "account role (Member or Librarian)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.guard.Logout()
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.store.Load()
			if err != nil {
				return err
			}
			if sess.AccessToken == "" {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("Role: %s\n", sess.Role)

			claims, err := session.ParseClaims(sess.AccessToken)
			if err != nil {
				a.logger.Debug().Err(err).Msg("access token not decodable")
				return nil
			}
			if claims.Subject != "" {
				fmt.Printf("Email: %s\n", claims.Subject)
			}
			if claims.ExpiresAt != nil {
				if claims.Expired(time.Now()) {
					fmt.Printf("Token: expired at %s\n", claims.ExpiresAt.Format(time.RFC3339))
				} else {
					fmt.Printf("Token: valid until %s\n", claims.ExpiresAt.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
