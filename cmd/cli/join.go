package main

import (
	"errors"
	"fmt"

	"github.com/postie/waitlist/pkg/waitlistclient"
	"github.com/spf13/cobra"
)

func newJoinCommand() *cobra.Command {
	var (
		email  string
		apiURL string
	)

	cmd := &cobra.Command{
		Use:   "join --email <address>",
		Short: "Submit an address to the waitlist",
		Long:  "Posts the address to WAITLIST_API_URL (default http://localhost:8080) exactly once and prints the outcome.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := waitlistclient.LoadConfigFromEnv()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			alerter := waitlistclient.AlerterFunc(func(message string) {
				fmt.Fprintln(cmd.ErrOrStderr(), message)
			})

			form := waitlistclient.NewForm(
				waitlistclient.New(cfg.APIURL),
				alerter,
				waitlistclient.WithConfirmationWindow(cfg.ConfirmationWindow),
			)
			defer form.Close()

			form.SetEmail(email)
			if err := form.Submit(cmd.Context()); err != nil {
				if errors.Is(err, waitlistclient.ErrEmptyEmail) {
					fmt.Fprintln(cmd.ErrOrStderr(), "an email address is required")
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), form.Confirmation())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Address to add to the waitlist")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Override WAITLIST_API_URL")

	return cmd
}
