package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/palette/internal/model"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add [board] [column] [title]",
	Short: "Add a card to the end of a column",
	Long: `Add a card to the end of a column.

Examples:
  palette card add Roadmap "To Do" "Write release notes"
  palette card add Roadmap todo "Ship v2" --due 2025-06-01 --desc "Tag and publish"`,
	Args: cobra.MinimumNArgs(3),
	RunE: runCardAdd,
}

var cardMoveCmd = &cobra.Command{
	Use:   "move [board] [from] [to] [card]",
	Short: "Move a card to the end of another column",
	Args:  cobra.ExactArgs(4),
	RunE:  runCardMove,
}

var (
	cardDesc string
	cardDue  string
)

func init() {
	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardMoveCmd)

	cardAddCmd.Flags().StringVarP(&cardDesc, "desc", "d", "", "Card description")
	cardAddCmd.Flags().StringVar(&cardDue, "due", "", "Due date (YYYY-MM-DD)")
}

func runCardAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args[2:], " "))
	if title == "" {
		return fmt.Errorf("card title required")
	}

	fields := model.CardFields{Title: title, Description: strings.TrimSpace(cardDesc)}
	if cardDue != "" {
		due, err := time.ParseInLocation("2006-01-02", cardDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", cardDue)
		}
		fields.DueDate = &due
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
		if err := a.store.AddCard(cmd.Context(), b.ID, col.ID, fields); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s / %s\n", title, b.Name, col.Title)
		return nil
	})
}

func runCardMove(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		from, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}
		to, err := resolveColumn(b, args[2])
		if err != nil {
			return err
		}
		card, err := resolveCard(from, args[3])
		if err != nil {
			return err
		}

		if err := a.store.MoveCard(cmd.Context(), b.ID, from.ID, to.ID, card.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %q from %s to %s\n", card.Title, from.Title, to.Title)
		return nil
	})
}
