package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		runID  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded migration runs",
		Long: `List the runs recorded in the ledger, newest first. With --run, show one
run with its migration log ("latest" selects the newest run).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ledger, err := openLedger(opts.root, cfg, false)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ctx := cmd.Context()

			if runID == "" {
				var runs []core.RunRecord
				if ledger != nil {
					defer ledger.Close()
					if runs, err = ledger.ListRuns(ctx); err != nil {
						return err
					}
				}
				if format == "json" {
					return printRunsJSON(w, runs)
				}
				return printRunsText(w, runs, time.Now())
			}

			if ledger == nil {
				return core.ErrRunNotFound
			}
			defer ledger.Close()
			var run core.RunRecord
			if runID == "latest" {
				run, err = ledger.LatestRun(ctx)
			} else {
				run, err = ledger.Run(ctx, runID)
			}
			if err != nil {
				return err
			}
			j, err := ledger.RunJournal(ctx, run.ID)
			if err != nil {
				return err
			}
			if format == "json" {
				return printRunJSON(w, run, j)
			}
			return printRunText(w, run, j)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", `show one run by ID, or "latest"`)
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	return cmd
}
