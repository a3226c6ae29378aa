package main

import (
	"github.com/spf13/cobra"
)

func newAuthCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and inspect the session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "signup <email> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.api().SignUp(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Account created for %s (user %s)\n", res.Email, res.UserID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "signin <email> <password>",
		Short: "Sign in and print the session token",
		Long: `Sign in and print the session token.

Export it as LAUNCHMATE_TOKEN (or pass --token) so later commands run as
this founder.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := opts.api()
			res, err := api.SignIn(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "Signed in as %s (user %s)\n", res.Email, res.UserID)
			printf(out, "export LAUNCHMATE_TOKEN=%s\n", api.Token())
			printf(out, "export LAUNCHMATE_OWNER=%s\n", res.Email)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := opts.api().Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "ID:     %s\n", me.ID)
			printf(out, "Email:  %s\n", me.Email)
			if me.FullName != "" {
				printf(out, "Name:   %s\n", me.FullName)
			}
			return nil
		},
	})

	return cmd
}
