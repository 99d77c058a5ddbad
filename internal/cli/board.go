package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"boards", "b"},
	Short:   "Manage boards",
	Long:    `Create, list, and manage boards.`,
}

var boardNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new board",
	Long: `Create a new board. The kanban template seeds To Do, In Progress and
Done columns; the basic template starts with a single Tasks column.

Examples:
  palette board new "Roadmap"
  palette board new "Groceries" --color mint --template basic`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBoardNew,
}

var boardListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List boards, newest first",
	RunE:    runBoardList,
}

var boardShowCmd = &cobra.Command{
	Use:   "show [board]",
	Short: "Show a board with its columns and cards",
	Long: `Show a board with its columns and cards. Card descriptions are hidden
when compact_mode is on (see 'palette settings').`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardShow,
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename [board] [name]",
	Short: "Rename a board",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBoardRename,
}

var boardColorCmd = &cobra.Command{
	Use:   "color [board] [color]",
	Short: "Change a board's color",
	Long:  "Change a board's color to one of: " + paletteNames(),
	Args:  cobra.ExactArgs(2),
	RunE:  runBoardColor,
}

var boardFavCmd = &cobra.Command{
	Use:     "fav [board]",
	Aliases: []string{"favorite"},
	Short:   "Toggle a board's favorite flag",
	Args:    cobra.ExactArgs(1),
	RunE:    runBoardFav,
}

var boardDeleteCmd = &cobra.Command{
	Use:     "delete [board]",
	Aliases: []string{"rm"},
	Short:   "Delete a board with all its columns and cards",
	Args:    cobra.ExactArgs(1),
	RunE:    runBoardDelete,
}

var (
	boardColor     string
	boardTemplate  string
	boardFavorites bool
	boardYes       bool
)

func init() {
	boardCmd.AddCommand(boardNewCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardRenameCmd)
	boardCmd.AddCommand(boardColorCmd)
	boardCmd.AddCommand(boardFavCmd)
	boardCmd.AddCommand(boardDeleteCmd)

	boardNewCmd.Flags().StringVarP(&boardColor, "color", "c", string(model.DefaultColor), "Board color ("+paletteNames()+")")
	boardNewCmd.Flags().StringVarP(&boardTemplate, "template", "t", "kanban", "Column template (kanban, basic)")
	boardListCmd.Flags().BoolVarP(&boardFavorites, "favorites", "f", false, "Only show favorites")
	boardDeleteCmd.Flags().BoolVarP(&boardYes, "yes", "y", false, "Do not ask for confirmation")
}

func runBoardNew(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("board name required")
	}

	color, err := parseColor(boardColor)
	if err != nil {
		return err
	}

	var template model.Template
	switch boardTemplate {
	case "kanban":
		template = model.TemplateKanban
	case "basic", "":
		template = model.TemplateBasic
	default:
		return fmt.Errorf("unknown template %q (want kanban or basic)", boardTemplate)
	}

	return withStore(cmd.Context(), func(a *app) error {
		b, err := a.store.CreateBoard(cmd.Context(), name, color, template)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s (%s)\n", tui.Dot(b.Color), b.Name, shortID(b.ID))
		return nil
	})
}

func runBoardList(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		boards := a.store.Boards()
		if boardFavorites {
			boards = a.store.Favorites(0)
		}

		if len(boards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No boards found. Create one with: palette board new \"Roadmap\"")
			return nil
		}
		printBoards(cmd.OutOrStdout(), boards, a.store.Limit())
		return nil
	})
}

func runBoardShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		ident, _ := a.identity()
		if err := a.prefs.Load(cmd.Context(), ident); err != nil {
			logger.Warn("Showing board without settings", logger.F("error", err))
		}
		printBoard(cmd.OutOrStdout(), b, a.prefs.Current().CompactMode)
		return nil
	})
}

func runBoardRename(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return fmt.Errorf("board name required")
	}

	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		if name == b.Name {
			fmt.Fprintln(cmd.OutOrStdout(), "Name unchanged.")
			return nil
		}

		if err := a.store.UpdateBoard(cmd.Context(), b.ID, model.SetName(name)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", b.Name, name)
		return nil
	})
}

func runBoardColor(cmd *cobra.Command, args []string) error {
	color, err := parseColor(args[1])
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		if err := a.store.UpdateBoard(cmd.Context(), b.ID, model.SetColor(color)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s is now %s\n", tui.Dot(color), b.Name, color)
		return nil
	})
}

func runBoardFav(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}
		if err := a.store.ToggleFavorite(cmd.Context(), b.ID); err != nil {
			return err
		}

		updated, _ := a.store.Board(b.ID)
		if updated.IsFavorite {
			fmt.Fprintf(cmd.OutOrStdout(), "★ %s added to favorites\n", b.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s removed from favorites\n", b.Name)
		}
		return nil
	})
}

func runBoardDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(a *app) error {
		b, err := resolveBoard(a.store.Boards(), args[0])
		if err != nil {
			return err
		}

		if cfg.ConfirmDelete && !boardYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete board %q with %d cards? [y/N] ", b.Name, b.CardCount())
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := a.store.DeleteBoard(cmd.Context(), b.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted board %q\n", b.Name)
		return nil
	})
}

func parseColor(s string) (model.Color, error) {
	c := model.Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Known() {
		return "", fmt.Errorf("unknown color %q (want one of %s)", s, paletteNames())
	}
	return c, nil
}

func paletteNames() string {
	names := make([]string, len(model.Palette))
	for i, c := range model.Palette {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
