package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Уведомления",
	}

	cmd.AddCommand(
		newNotificationsListCmd(),
		newNotificationsUnreadCmd(),
		newNotificationsReadCmd(),
	)

	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список уведомлений",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			notifications, err := a.client.Notifications(ctx)
			if err != nil {
				return err
			}

			for _, n := range notifications {
				marker := " "
				if !n.EstLue {
					marker = "*"
				}
				fmt.Printf("%s %d\t%s — %s\n", marker, n.ID, n.Titre, n.Message)
			}
			return nil
		},
	}
}

func newNotificationsUnreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Число непрочитанных",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			count, err := a.client.UnreadNotifications(ctx)
			if err != nil {
				return err
			}

			fmt.Println(count)
			return nil
		},
	}
}

func newNotificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Пометить уведомление прочитанным",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id: %q", args[0])
			}

			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			return a.client.MarkNotificationRead(ctx, id)
		},
	}
}
