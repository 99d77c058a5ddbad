package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/palette/internal/config"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with palette-server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to palette-server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from palette-server",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on palette-server",
	RunE:  runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend and login state",
	RunE:  runStatus,
}

var authServer string

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)

	authCmd.PersistentFlags().StringVar(&authServer, "server", "", "palette-server URL (saved for later commands)")
}

// prompter reads answers from the command's input
type prompter struct {
	w io.Writer
	r *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{w: cmd.OutOrStdout(), r: bufio.NewReader(cmd.InOrStdin())}
}

func (p *prompter) line(label string) string {
	fmt.Fprint(p.w, label)
	s, _ := p.r.ReadString('\n')
	return strings.TrimSpace(s)
}

// secret reads without echo when stdin is a terminal
func (p *prompter) secret(label string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.line(label)
	}

	fmt.Fprint(p.w, label)
	b, _ := term.ReadPassword(fd)
	fmt.Fprintln(p.w)
	return string(b)
}

func authSession() (*session.Provider, error) {
	sess, err := openSession()
	if err != nil {
		return nil, err
	}
	if authServer != "" {
		if err := sess.SetServer(strings.TrimRight(authServer, "/")); err != nil {
			return nil, fmt.Errorf("failed to save server: %w", err)
		}
	}
	return sess, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	sess, err := authSession()
	if err != nil {
		return err
	}
	client := newClient(cfg, sess)

	p := newPrompter(cmd)
	username := p.line("Username: ")
	password := p.secret("Password: ")

	fmt.Fprintln(cmd.OutOrStdout(), "Logging in...")
	auth, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	return signIn(cmd, sess, auth.Token, auth.UserID, auth.Username, "Logged in successfully!")
}

func runRegister(cmd *cobra.Command, args []string) error {
	sess, err := authSession()
	if err != nil {
		return err
	}
	client := newClient(cfg, sess)

	p := newPrompter(cmd)
	username := p.line("Username: ")
	email := p.line("Email: ")
	password := p.secret("Password: ")
	confirm := p.secret("Confirm Password: ")

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Creating account...")
	auth, err := client.Register(cmd.Context(), username, email, password)
	if err != nil {
		return err
	}

	return signIn(cmd, sess, auth.Token, auth.UserID, auth.Username, "Account created and logged in!")
}

// signIn stores the credentials and switches the backend to the server
func signIn(cmd *cobra.Command, sess *session.Provider, token, userID, username, msg string) error {
	err := sess.SignIn(session.Credentials{
		ServerURL: serverURL(cfg, sess),
		Token:     token,
		UserID:    userID,
		Username:  username,
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	out.Success(msg)

	if cfg.Backend != config.BackendServer {
		cfg.Backend = config.BackendServer
		if err := cfg.Save(); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Backend switched to server.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess, err := authSession()
	if err != nil {
		return err
	}

	if _, ok := sess.Current(); !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logging out...")
	if err := newClient(cfg, sess).Logout(cmd.Context()); err != nil {
		logger.Warn("Server logout failed", logger.F("error", err))
	}
	if err := sess.SignOut(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	out.Success("Logged out successfully.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:  %s\n", cfg.Backend)

	if cfg.Backend == config.BackendLocal {
		fmt.Fprintf(w, "Database: %s\n", cfg.DBPath)
		fmt.Fprintf(w, "User:     %s\n", cfg.LocalUser)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Server:   %s\n", serverURL(cfg, sess))

	ident, ok := sess.Current()
	if !ok {
		fmt.Fprintln(w, "Session:  not logged in")
		return nil
	}

	if _, err := newClient(cfg, sess).Me(cmd.Context()); err != nil {
		fmt.Fprintf(w, "Session:  %s (%s), server check failed: %v\n", ident.Name, shortID(ident.ID), err)
		return nil
	}
	fmt.Fprintf(w, "Session:  %s (%s)\n", ident.Name, shortID(ident.ID))
	return nil
}
