package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"worklog/internal/bootstrap"
	reportdto "worklog/internal/modules/report/dto"
	"worklog/internal/platform/config"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, apperrors.ErrMissingCredential) {
			_, _ = fmt.Fprintln(os.Stderr, "error: no Discord bot token configured")
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir    string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Login/logout time tracking for Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", ".", "directory holding the database, .env and worklog.yaml")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/worklog.yaml)")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newActiveCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	return config.Load(flags.dataDir, flags.configPath)
}

func loadApp(ctx context.Context, cfg config.Config, logOut io.Writer) (*bootstrap.App, error) {
	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, logger)
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the Discord bot until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if err := cfg.RequireToken(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := loadApp(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunBot(ctx, app)
		},
	}
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var userID string
	login := &cobra.Command{
		Use:   "login --user <id>",
		Short: "Start a session for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(userID) == "" {
				return fmt.Errorf("--user is required")
			}
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Login(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in: user=%s at=%s\n", out.UserID, out.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
	login.Flags().StringVar(&userID, "user", "", "user id")
	return login
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	var userID string
	logout := &cobra.Command{
		Use:   "logout --user <id>",
		Short: "Close the active session of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(userID) == "" {
				return fmt.Errorf("--user is required")
			}
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Logout(cmd.Context(), userID)
			if err != nil {
				return err
			}
			week, err := app.ReportCLI.UserWeekTotal(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged out: user=%s duration=%.2fh week=%.2fh\n", out.UserID, out.DurationSeconds/3600, week.Hours)
			return nil
		},
	}
	logout.Flags().StringVar(&userID, "user", "", "user id")
	return logout
}

func newActiveCmd(flags *globalFlags) *cobra.Command {
	var userID string
	active := &cobra.Command{
		Use:   "active [--user <id>]",
		Short: "Show in-progress sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			w := cmd.OutOrStdout()
			if strings.TrimSpace(userID) != "" {
				out, err := app.SessionCLI.GetActive(cmd.Context(), userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s\tsince %s\t%.2fh\n", out.UserID, out.StartedAt.Format(time.RFC3339), out.ElapsedSeconds/3600)
				return nil
			}
			all, err := app.SessionCLI.ListActive(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				_, _ = fmt.Fprintln(w, "no active sessions")
				return nil
			}
			for _, out := range all {
				_, _ = fmt.Fprintf(w, "%s\tsince %s\t%.2fh\n", out.UserID, out.StartedAt.Format(time.RFC3339), out.ElapsedSeconds/3600)
			}
			return nil
		},
	}
	active.Flags().StringVar(&userID, "user", "", "user id (default all users)")
	return active
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var mode string
	report := &cobra.Command{
		Use:   "report [--mode week|all|weekly]",
		Short: "Print time totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ReportCLI.Aggregate(cmd.Context(), mode)
			if err != nil {
				return err
			}
			printAggregate(cmd.OutOrStdout(), out)
			return nil
		},
	}
	report.Flags().StringVar(&mode, "mode", "week", "aggregation mode: week|all|weekly")

	var dir string
	export := &cobra.Command{
		Use:   "export [--dir <path>]",
		Short: "Write this week's totals to a markdown note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			target := dir
			if target == "" {
				target = filepath.Join(app.Config.DataDir, "reports")
			}
			out, err := app.ReportCLI.Export(cmd.Context(), target)
			if err != nil {
				return err
			}
			verb := "created"
			if out.Replaced {
				verb = "updated"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (week of %s, %d users)\n", verb, out.Path, out.Week.Format("2006-01-02"), out.Users)
			return nil
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "output directory (default <data-dir>/reports)")
	report.AddCommand(export)
	return report
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show a live leaderboard in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			// The board owns the terminal; keep logs out of it.
			app, err := loadApp(cmd.Context(), cfg, io.Discard)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func openApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return loadApp(cmd.Context(), cfg, cmd.ErrOrStderr())
}

func printAggregate(w io.Writer, out reportdto.AggregateOutput) {
	switch out.Mode {
	case "weekly":
		if len(out.Weeks) == 0 {
			_, _ = fmt.Fprintln(w, "no time logged")
			return
		}
		for _, week := range out.Weeks {
			_, _ = fmt.Fprintf(w, "week of %s\n", week.Start.Format("2006-01-02"))
			printUsers(w, week.Users)
		}
	case "all":
		_, _ = fmt.Fprintln(w, "total overall time")
		printUsers(w, out.Users)
	default:
		_, _ = fmt.Fprintf(w, "week of %s\n", out.Week.Start.Format("2006-01-02"))
		printUsers(w, out.Users)
	}
}

func printUsers(w io.Writer, users []reportdto.UserTotalOutput) {
	if len(users) == 0 {
		_, _ = fmt.Fprintln(w, "  no time logged")
		return
	}
	for i, u := range users {
		active := ""
		if u.Active {
			active = " (active)"
		}
		_, _ = fmt.Fprintf(w, "  %d. %s\t%.2f hours%s\n", i+1, u.UserID, u.Hours, active)
	}
}
