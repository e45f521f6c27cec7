package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"beetbridge/internal/beetout"
	"beetbridge/internal/session"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var (
		subject    string
		stderrFile string
		jsonOut    bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "parse <output-file>",
		Short: "Reconcile captured beet import output into a decision record",
		Long: `Parse the raw text captured from a beet import run and print the
resulting decision record. The file should hold the tool's combined or
primary output; a separate diagnostic stream can be supplied with --stderr.

Examples:
  beetbridge parse run.log --subject /import/Artist-Album
  beetbridge parse run.log --stderr run.err --json
  beetbridge parse run.log --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			stdout, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read output file: %w", err)
			}
			var stderrText string
			if stderrFile != "" {
				data, err := os.ReadFile(stderrFile)
				if err != nil {
					return fmt.Errorf("read stderr file: %w", err)
				}
				stderrText = string(data)
			}

			if strings.TrimSpace(subject) == "" {
				subject = args[0]
			}

			engine := beetout.NewEngine(logger)
			record := engine.Parse(string(stdout), stderrText, subject)

			if save {
				store, err := session.Open(cfg)
				if err != nil {
					return fmt.Errorf("open session store: %w", err)
				}
				defer store.Close()
				id, err := store.Save(cmd.Context(), record)
				if err != nil {
					return fmt.Errorf("save decision: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved decision #%d\n", id)
			}

			if jsonOut {
				return writeJSON(cmd, record)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecord(record, cfg.Diff.CharThreshold))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject path the decision concerns (defaults to the file path)")
	cmd.Flags().StringVar(&stderrFile, "stderr", "", "File holding the diagnostic output stream")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the decision record as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the decision record to the session store")

	return cmd
}
