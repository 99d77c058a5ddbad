package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var columnCmd = &cobra.Command{
	Use:     "column",
	Aliases: []string{"col"},
	Short:   "Manage the columns of a board",
}

var columnAddCmd = &cobra.Command{
	Use:   "add [board] [title]",
	Short: "Append a column to a board",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runColumnAdd,
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename [board] [column] [title]",
	Short: "Rename a column",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runColumnRename,
}

var columnDeleteCmd = &cobra.Command{
	Use:     "delete [board] [column]",
	Aliases: []string{"rm"},
	Short:   "Delete a column and its cards",
	Args:    cobra.ExactArgs(2),
	RunE:    runColumnDelete,
}

func init() {
	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnDeleteCmd)
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return fmt.Errorf("column title required")
	}

	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		if err := a.store.AddColumn(cmd.Context(), b.ID, title); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added column %q to %s\n", title, b.Name)
		return nil
	})
}

func runColumnRename(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args[2:], " "))
	if title == "" {
		return fmt.Errorf("column title required")
	}

	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		col, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}
		if col.Title == title {
			fmt.Fprintln(cmd.OutOrStdout(), "Title unchanged.")
			return nil
		}
		if err := a.store.UpdateColumn(cmd.Context(), b.ID, col.ID, title); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed column %q to %q\n", col.Title, title)
		return nil
	})
}

func runColumnDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		col, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}
		if err := a.store.DeleteColumn(cmd.Context(), b.ID, col.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted column %q (%d cards)\n", col.Title, len(col.Cards))
		return nil
	})
}
