package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/palette/internal/config"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "palette",
	Short: "Palette - Kanban boards in your terminal",
	Long: `Palette keeps colored Kanban boards with columns and cards, stored
locally in SQLite or on a palette-server.

Run 'palette' without arguments to launch the interactive TUI.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Palette started", logger.F("command", cmd.Name()), logger.F("backend", cfg.Backend))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		notices := tui.NewNotifier()
		a, err := openApp(cfg, notices)
		if err != nil {
			return err
		}
		defer a.Close()

		bound := make(chan func(), 1)
		defer func() {
			select {
			case unbind := <-bound:
				unbind()
			default:
			}
		}()

		m := tui.NewModel(a.store, notices).WithStartup(func(ctx context.Context) error {
			bound <- a.store.Bind(ctx, a.session)
			return nil
		})

		logger.Info("Launching TUI")
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Palette exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command. Errors already shown to the user through
// the notifier are not printed again.
func Execute() error {
	out.reset()
	err := rootCmd.Execute()
	if err != nil && !out.reported {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(authCmd)
}
