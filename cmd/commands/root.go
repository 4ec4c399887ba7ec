package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/lazyd/internal/update"
)

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// runs the TUI.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "lazyd",
		Usage: "One tiny task a day, and a streak to keep",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Task category (Study, Exercise, Cleaning, Creative, Journal)",
			},
			&cli.IntFlag{
				Name:  "level",
				Usage: "Difficulty level 1-5",
			},
			&cli.IntFlag{
				Name:  "goal",
				Usage: "Weekly completion goal",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite file for history; empty keeps it in memory",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "YAML file overriding the built-in task catalog",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Session ID to resume",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTodayCommand(),
			NewDoneCommand(),
			NewStatsCommand(),
			NewExportCommand(),
			NewImportCommand(),
		},
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []update.Option{update.WithCatalog(a.catalog)}
	if a.store != nil {
		opts = append(opts, update.WithPersister(a.store))
	}
	program := tea.NewProgram(update.NewModel(a.state, opts...), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
