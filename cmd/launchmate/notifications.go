package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newNotificationsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "Read the local notification log",
		Long: `Read the local notification log.

Notifications live on this machine only. Pass --redis to keep them between
runs; without it every invocation starts empty.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			center, err := opts.loadNotifications(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			state := "on"
			if !center.Enabled() {
				state = "off"
			}
			printf(out, "%d unread (notifications %s)\n", center.UnreadCount(), state)
			for _, n := range center.List() {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				printf(out, "%s %s  %s  %s: %s\n", mark, n.ID, n.Timestamp.Local().Format(time.DateTime), n.Title, n.Message)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := opts.loadNotifications(cmd.Context())
			if err != nil {
				return err
			}
			center.MarkAsRead(cmd.Context(), args[0])
			printf(cmd.OutOrStdout(), "%d unread\n", center.UnreadCount())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			center, err := opts.loadNotifications(cmd.Context())
			if err != nil {
				return err
			}
			center.MarkAllAsRead(cmd.Context())
			printf(cmd.OutOrStdout(), "0 unread\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Turn notifications on or off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			center, err := opts.loadNotifications(cmd.Context())
			if err != nil {
				return err
			}
			if center.ToggleEnabled(cmd.Context()) {
				printf(cmd.OutOrStdout(), "Notifications on\n")
			} else {
				printf(cmd.OutOrStdout(), "Notifications off\n")
			}
			return nil
		},
	})

	return cmd
}
