package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/lazyd/internal/continuity"
)

// NewExportCommand returns the export subcommand.
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:   "export",
		Usage:  "Write the completion history as JSON to stdout",
		Action: runExport,
	}
}

// NewImportCommand returns the import subcommand.
func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Merge a JSON history file into the session",
		ArgsUsage: "<file>",
		Action:    runImport,
	}
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	raw, err := continuity.MarshalHistory(a.state.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = fmt.Fprintln(output(cmd), string(raw))
	return err
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: lazyd import <file>")
	}
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errNoDatabase
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	imported, err := continuity.UnmarshalHistory(raw)
	if err != nil {
		return err
	}

	merged := make(continuity.History, len(a.state.History)+len(imported))
	for k, v := range a.state.History {
		merged[k] = v
	}
	for k, v := range imported {
		merged[k] = v
	}
	a.state.History = merged
	if err := a.save(ctx); err != nil {
		return err
	}
	slog.Debug("history imported", "session", a.state.ID, "records", len(imported), "file", path)
	fmt.Fprintf(output(cmd), "imported %d record(s); %d total\n", len(imported), len(merged))
	return nil
}
