package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/lazyd/internal/model"
)

// NewStatsCommand returns the stats subcommand.
func NewStatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show streak, weekly progress and total completions",
		Action: runStats,
	}
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.state.Metrics(model.DateOf(time.Now()))
	if err != nil {
		return fmt.Errorf("compute metrics: %w", err)
	}

	w := tabwriter.NewWriter(output(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "STREAK\t%d day(s)\n", m.Streak)
	fmt.Fprintf(w, "THIS WEEK\t%d/%d (%.0f%%)\n", m.WeeklyCount, m.WeeklyGoal, m.WeeklyProgress*100)
	fmt.Fprintf(w, "TOTAL\t%d\n", m.Total)
	return w.Flush()
}
