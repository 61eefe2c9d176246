package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bwmarrin/discordgo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	botinadapter "worklog/internal/modules/bot/adapter/in"
	botin "worklog/internal/modules/bot/port/in"
	botservice "worklog/internal/modules/bot/service"
	botusecase "worklog/internal/modules/bot/usecase"
	reportinadapter "worklog/internal/modules/report/adapter/in"
	reportoutadapter "worklog/internal/modules/report/adapter/out"
	reportdomain "worklog/internal/modules/report/domain"
	reportservice "worklog/internal/modules/report/service"
	reportusecase "worklog/internal/modules/report/usecase"
	sessioninadapter "worklog/internal/modules/session/adapter/in"
	sessionoutadapter "worklog/internal/modules/session/adapter/out"
	sessionservice "worklog/internal/modules/session/service"
	sessionusecase "worklog/internal/modules/session/usecase"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/config"
	"worklog/internal/platform/sqlite"
	"worklog/internal/platform/tx"
	boardview "worklog/internal/ui/views/board"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	ReportCLI  reportinadapter.CLIHandler
	Bot        botin.Usecase
	Discord    *botinadapter.DiscordHandler
	Config     config.Config
	Logger     zerolog.Logger

	db *sql.DB
}

func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	return newApp(ctx, cfg, logger, clock.SystemClock{Location: cfg.Location})
}

func newApp(ctx context.Context, cfg config.Config, logger zerolog.Logger, clk clock.Clock) (*App, error) {
	calendar, err := reportdomain.NewCalendar(cfg.AnchorWeekday, cfg.Location)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new session store: %w", err)
	}
	txm := tx.NewSQLManager(db)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, sessionStore, txm),
	)

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		calendar,
		reportoutadapter.NewSessionSourceAdapter(sessionUC),
		reportoutadapter.NewMarkdownReportWriter(),
		txm,
	))

	botUC := botusecase.NewInteractor(sessionUC, reportUC, botservice.NewBoardService(cfg.HistoryWeeks), logger)

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Str("anchor", cfg.AnchorWeekday.String()).
		Str("timezone", calendar.Location.String()).
		Msg("app wired")

	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		ReportCLI:  reportinadapter.NewCLIHandler(reportUC),
		Bot:        botUC,
		Discord:    botinadapter.NewDiscordHandler(botUC, cfg.Prefix, logger),
		Config:     cfg,
		Logger:     logger,
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RunBot connects to the gateway and serves button presses until ctx is
// done.
func RunBot(ctx context.Context, app *App) error {
	if err := app.Config.RequireToken(); err != nil {
		return err
	}
	session, err := discordgo.New("Bot " + app.Config.Token)
	if err != nil {
		return fmt.Errorf("new discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent
	app.Discord.Register(ctx, session)

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	app.Logger.Info().Msg("bot running, press ctrl+c to stop")
	<-ctx.Done()
	app.Logger.Info().Msg("shutting down")
	return session.Close()
}

func RunTUI(app *App) error {
	program := tea.NewProgram(boardview.New(app.ReportCLI), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
