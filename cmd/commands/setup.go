package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/lazyd/internal/catalog"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/session"
	"github.com/sandeepkv93/lazyd/internal/storage"
	"github.com/sandeepkv93/lazyd/internal/update"
)

var errNoDatabase = errors.New("this command needs --db (or LAZYD_DB_PATH)")

// app bundles what every subcommand needs. store and repo are nil when no
// database is configured.
type app struct {
	cfg     update.RuntimeConfig
	catalog catalog.Catalog
	state   session.State
	repo    *storage.SQLiteRepository
	store   *storage.SessionStore
	logFile *os.File
}

func setup(ctx context.Context, cmd *cli.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}
	if err := a.configureLogging(cmd.Bool("debug")); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	a.catalog = cat

	if err := a.openSession(ctx, cmd); err != nil {
		a.Close()
		return nil, err
	}
	slog.Debug("session ready",
		"session", a.state.ID,
		"category", a.state.Category,
		"level", a.state.Level,
		"goal", a.state.WeeklyGoal,
		"completions", len(a.state.History),
		"persistent", a.store != nil,
	)
	return a, nil
}

// loadConfig layers flags over LAZYD_* variables over defaults.
func loadConfig(cmd *cli.Command) (update.RuntimeConfig, error) {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if cmd.IsSet("category") {
		c, err := model.ParseCategory(cmd.String("category"))
		if err != nil {
			return cfg, err
		}
		cfg.Category = c
	}
	if cmd.IsSet("level") {
		cfg.Level = cmd.Int("level")
	}
	if cmd.IsSet("goal") {
		cfg.WeeklyGoal = cmd.Int("goal")
	}
	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("catalog") {
		cfg.CatalogFile = cmd.String("catalog")
	}
	if cmd.IsSet("session") {
		cfg.SessionID = cmd.String("session")
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// overridden reports whether a setting came from a flag or the environment
// rather than the defaults.
func overridden(cmd *cli.Command, flag, env string) bool {
	return cmd.IsSet(flag) || strings.TrimSpace(os.Getenv(env)) != ""
}

func (a *app) openSession(ctx context.Context, cmd *cli.Command) error {
	if a.cfg.DBPath == "" {
		state, err := a.cfg.NewSession()
		if err != nil {
			return err
		}
		a.state = state
		return nil
	}

	repo, err := storage.OpenSQLite(a.cfg.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	a.store = storage.NewSessionStore(repo)

	id := a.cfg.SessionID
	if id == "" {
		id = latestSessionID(ctx, repo)
	}
	state, created, err := a.store.LoadOrCreate(ctx, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	// A resumed session keeps its stored settings unless the caller asked
	// for different ones.
	category, level := state.Category, state.Level
	if created || overridden(cmd, "category", "LAZYD_CATEGORY") {
		category = a.cfg.Category
	}
	if created || overridden(cmd, "level", "LAZYD_LEVEL") {
		level = a.cfg.Level
	}
	if err := state.Configure(category, level); err != nil {
		return err
	}
	if created || overridden(cmd, "goal", "LAZYD_WEEKLY_GOAL") {
		if err := state.SetWeeklyGoal(a.cfg.WeeklyGoal); err != nil {
			return err
		}
	}
	a.state = state
	return a.store.Save(ctx, a.state)
}

// latestSessionID picks the most recently updated session, or "" when the
// database is empty.
func latestSessionID(ctx context.Context, repo storage.Repository) string {
	rows, err := repo.ListSessions(ctx, storage.SessionListFilter{Limit: 1})
	if err != nil {
		slog.Warn("list sessions", "error", err)
		return ""
	}
	if len(rows) == 0 {
		return ""
	}
	return rows[0].ID
}

func (a *app) configureLogging(debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var w io.Writer = io.Discard
	if a.cfg.LogFile != "" {
		f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// save persists the session when a database is configured.
func (a *app) save(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Save(ctx, a.state)
}

func (a *app) Close() error {
	var errs []error
	if a.repo != nil {
		errs = append(errs, a.repo.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
