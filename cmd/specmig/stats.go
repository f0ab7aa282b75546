package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
)

func newStatsCmd(opts *globalOptions) *cobra.Command {
	var (
		dir      string
		format   string
		fields   string
		recorded bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count the documents of a migrated tree",
		Long: `Count the documents of a migrated tree. With --recorded the counts are
read from the mappings file of the last migration instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			fieldList := parseFields(fields)

			fsys, err := workspaceFs(opts.root)
			if err != nil {
				return err
			}
			if recorded && dir != "" {
				return fmt.Errorf("--recorded and --dir are mutually exclusive")
			}
			var cfg core.Config
			if recorded || dir == "" {
				if cfg, err = loadConfig(cmd, opts); err != nil {
					return err
				}
			}

			var result *core.MigrationStats
			statsOpts := core.StatsOptions{Fields: fieldList}
			if recorded {
				result, err = core.RecordedStats(fsys, cfg.MappingsFile, statsOpts)
			} else {
				if dir == "" {
					dir = cfg.TargetDir
				}
				result, err = core.Stats(fsys, dir, statsOpts)
			}
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return printStatsJSON(cmd.OutOrStdout(), result, fieldList)
			default:
				return printStatsText(cmd.OutOrStdout(), result, fieldList)
			}
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "tree to count (default: target_dir)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated fields to output")
	cmd.Flags().BoolVar(&recorded, "recorded", false, "read the stats recorded by the last migration")
	return cmd
}
