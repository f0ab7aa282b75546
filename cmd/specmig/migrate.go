package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	var (
		dryRun   bool
		noLedger bool
		format   string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the source tree to the ID-only layout",
		Long: `Back up the source tree, rebuild it under the target directory, place
context notes, rewrite internal links and write the index, the report and
the mappings file. The target directory is wiped first.

With --dry-run nothing is written to disk: the run happens in memory and
only the report is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if _, err := workspaceFs(opts.root); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if format == "text" {
				ui.Header(fmt.Sprintf("Migrating %s → %s", cfg.SourceDir, cfg.TargetDir))
				if dryRun {
					ui.Status("dry run: working in memory")
				}
			}

			m := core.NewMigrator(opts.root, cfg)
			m.Logger = ui.Logger
			if !dryRun && !noLedger {
				ledger, err := openLedger(opts.root, cfg, true)
				if err != nil {
					return fmt.Errorf("open ledger: %w", err)
				}
				if ledger != nil {
					defer ledger.Close()
					m.Ledger = ledger
				}
			}

			res, err := m.Run(cmd.Context(), core.MigrateOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				return printMigrateJSON(w, res)
			}
			if dryRun {
				fmt.Fprint(w, res.Report)
				ui.Warning("dry run: nothing was written")
				return nil
			}
			ui.Status(fmt.Sprintf("Backup written to %s", res.BackupDir))
			if err := printMigrateText(w, res); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Migration complete: review %s, then run 'specmig promote'", res.TargetDir))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run in memory and print the report without writing")
	cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "do not record the run in the ledger")
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	addLayoutFlags(cmd)
	return cmd
}
