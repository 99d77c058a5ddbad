package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/palette/internal/model"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox", "notif"},
	Short:   "Show your newest notifications",
	Long: `Show the 20 newest notifications, unread ones marked with a dot.

Examples:
  palette notifications
  palette notifications read 3f2a
  palette notifications read --all
  palette notifications add "Evening review" --type reminder`,
	Args: cobra.NoArgs,
	RunE: runNotificationsList,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification...]",
	Short: "Mark notifications as read",
	RunE:  runNotificationsRead,
}

var notificationsDeleteCmd = &cobra.Command{
	Use:     "delete [notification]",
	Aliases: []string{"rm"},
	Short:   "Delete a notification",
	Args:    cobra.ExactArgs(1),
	RunE:    runNotificationsDelete,
}

var notificationsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Post a notification to your own inbox",
	Long: `Post a notification to your own inbox. Useful from cron jobs that
remind you of your morning and evening reviews.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotificationsAdd,
}

var (
	notifAll     bool
	notifMessage string
	notifType    string
)

func init() {
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	notificationsCmd.AddCommand(notificationsAddCmd)

	notificationsReadCmd.Flags().BoolVarP(&notifAll, "all", "a", false, "Mark every notification as read")
	notificationsAddCmd.Flags().StringVarP(&notifMessage, "message", "m", "", "Notification body")
	notificationsAddCmd.Flags().StringVarP(&notifType, "type", "t", string(model.NotificationSystem), "Notification type ("+notificationTypeNames()+")")
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	return withInbox(cmd.Context(), func(a *app) error {
		items := a.inbox.Notifications()
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notifications")
			return nil
		}
		printNotifications(cmd.OutOrStdout(), items, a.inbox.UnreadCount())
		return nil
	})
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	if !notifAll && len(args) == 0 {
		return fmt.Errorf("notification required (or --all)")
	}

	return withInbox(cmd.Context(), func(a *app) error {
		if notifAll {
			if err := a.inbox.MarkAllAsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked as read")
			return nil
		}

		for _, arg := range args {
			n, err := resolveNotification(a.inbox.Notifications(), arg)
			if err != nil {
				return err
			}
			if err := a.inbox.MarkAsRead(cmd.Context(), n.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as read\n", n.Title)
		}
		return nil
	})
}

func runNotificationsDelete(cmd *cobra.Command, args []string) error {
	return withInbox(cmd.Context(), func(a *app) error {
		n, err := resolveNotification(a.inbox.Notifications(), args[0])
		if err != nil {
			return err
		}
		if err := a.inbox.Delete(cmd.Context(), n.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted notification %q\n", n.Title)
		return nil
	})
}

func runNotificationsAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("notification title required")
	}

	typ := model.NotificationType(strings.ToLower(strings.TrimSpace(notifType)))
	if !typ.Known() {
		return fmt.Errorf("unknown notification type %q (want one of %s)", notifType, notificationTypeNames())
	}

	return withInbox(cmd.Context(), func(a *app) error {
		n, err := a.inbox.Post(cmd.Context(), title, notifMessage, typ)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  • %s (%s)\n", n.Title, shortID(n.ID))
		return nil
	})
}

func notificationTypeNames() string {
	names := make([]string, len(model.NotificationTypes))
	for i, t := range model.NotificationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
