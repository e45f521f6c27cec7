package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"beetbridge/internal/session"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and update persisted import decisions",
	}

	sessionCmd.AddCommand(newSessionListCommand(ctx))
	sessionCmd.AddCommand(newSessionShowCommand(ctx))
	sessionCmd.AddCommand(newSessionSelectCommand(ctx))
	sessionCmd.AddCommand(newSessionClearCommand(ctx))

	return sessionCmd
}

func openStore(ctx *commandContext) (*session.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	store, err := session.Open(cfg)
	if err != nil {
		if errors.Is(err, session.ErrLocked) {
			return nil, fmt.Errorf("session store is in use by another process: %w", err)
		}
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

func newSessionListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent decision records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list decisions: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored decisions")
				return nil
			}

			columns := []column{
				{"ID", alignRight},
				{"Subject", alignLeft},
				{"Outcome", alignLeft},
				{"Selected", alignRight},
				{"Created", alignLeft},
			}
			rows := make([][]string, 0, len(records))
			for _, stored := range records {
				selected := ""
				if stored.Record.SelectedIndex != nil {
					selected = strconv.Itoa(*stored.Record.SelectedIndex)
				}
				rows = append(rows, []string{
					strconv.FormatInt(stored.ID, 10),
					stored.Record.SubjectPath,
					string(stored.Record.Outcome),
					selected,
					stored.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderColumns(columns, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of decisions to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the decision list as JSON")
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a stored decision (latest when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var stored *session.Stored
			if len(args) == 1 {
				id, parseErr := strconv.ParseInt(args[0], 10, 64)
				if parseErr != nil {
					return fmt.Errorf("invalid decision id %q", args[0])
				}
				stored, err = store.Get(cmd.Context(), id)
			} else {
				stored, err = store.Current(cmd.Context())
			}
			if errors.Is(err, session.ErrNotFound) {
				return fmt.Errorf("no matching decision")
			}
			if err != nil {
				return fmt.Errorf("load decision: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, stored)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Decision %d (token %s)\n", stored.ID, stored.Token)
			fmt.Fprintln(out, renderRecord(stored.Record, cfg.Diff.CharThreshold))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the decision as JSON")
	return cmd
}

func newSessionSelectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <candidate-index>",
		Short: "Record which candidate was chosen for a stored decision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid decision id %q", args[0])
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid candidate index %q", args[1])
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SelectCandidate(cmd.Context(), id, index); err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return fmt.Errorf("no decision with id %d", id)
				}
				if errors.Is(err, session.ErrNoSelection) {
					return fmt.Errorf("decision %d does not accept candidate %d: %w", id, index, err)
				}
				return fmt.Errorf("select candidate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded candidate %d for decision %d\n", index, id)
			return nil
		},
	}
}

func newSessionClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear without --yes")
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear decisions: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored decisions")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")
	return cmd
}
