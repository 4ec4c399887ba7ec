package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/selector"
)

// NewTodayCommand returns the today subcommand.
func NewTodayCommand() *cli.Command {
	return &cli.Command{
		Name:   "today",
		Usage:  "Print today's task",
		Action: runToday,
	}
}

// NewDoneCommand returns the done subcommand.
func NewDoneCommand() *cli.Command {
	return &cli.Command{
		Name:   "done",
		Usage:  "Mark today's task as done",
		Action: runDone,
	}
}

func runToday(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	today := model.DateOf(time.Now())
	task, err := a.state.Current(a.catalog, today)
	if err != nil {
		return fmt.Errorf("today's task: %w", err)
	}
	if err := a.save(ctx); err != nil {
		return err
	}

	w := output(cmd)
	fmt.Fprintf(w, "%s %s\n", task.Category.Emoji(), task.Task)
	fmt.Fprintf(w, "category: %s | level: %d (%s) | %s\n",
		task.Category, task.Level, selector.BucketForLevel(task.Level), task.Date)
	if _, done := a.state.History[today]; done {
		fmt.Fprintln(w, "already done today")
	}
	return nil
}

func runDone(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.state.Complete(a.catalog, model.DateOf(time.Now()))
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(output(cmd), "recorded %s: %s\n", rec.Date, rec.Task)
	return nil
}
