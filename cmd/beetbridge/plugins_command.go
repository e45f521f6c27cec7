package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"beetbridge/internal/plugins"
)

func newPluginsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plugins <config-dump-file>",
		Short: "Detect enabled beets plugins from a captured `beet config` dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			dump, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read config dump: %w", err)
			}

			fetch := func(context.Context) (string, error) { return string(dump), nil }
			ttl := time.Duration(cfg.Plugins.CacheTTLSeconds) * time.Second
			detector := plugins.NewDetector(fetch, ttl, logger)

			enabled, err := detector.Enabled(cmd.Context())
			if err != nil {
				return fmt.Errorf("detect plugins: %w", err)
			}
			sources, err := detector.MetadataSources(cmd.Context())
			if err != nil {
				return fmt.Errorf("resolve metadata sources: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"plugins": plugins.Names(enabled),
					"sources": sources,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plugins: %s\n", strings.Join(plugins.Names(enabled), ", "))
			names := make([]string, 0, len(sources))
			for _, source := range sources {
				names = append(names, string(source))
			}
			fmt.Fprintf(out, "Metadata sources (priority order): %s\n", strings.Join(names, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the plugin set as JSON")

	return cmd
}
