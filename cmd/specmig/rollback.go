package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

func newRollbackCmd(opts *globalOptions) *cobra.Command {
	var (
		backup string
		force  bool
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore the source tree from a backup",
		Long: `Copy a backup (the latest one unless --backup is given) back into the
source directory. An existing source directory is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := workspaceFs(opts.root)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if backup == "" {
				latest, err := core.LatestBackup(fsys, cfg.BackupPrefix)
				if err != nil {
					return err
				}
				if latest == "" {
					return fmt.Errorf("no backup found with prefix %q", cfg.BackupPrefix)
				}
				backup = latest
			}
			if !yes {
				desc := ""
				if force {
					desc = fmt.Sprintf("The current %s will be deleted.", cfg.SourceDir)
				}
				ok, err := confirm(fmt.Sprintf("Restore %s from %s?", cfg.SourceDir, backup), desc)
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			res, err := core.Rollback(fsys, cfg, core.RollbackOptions{BackupDir: backup, Force: force})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\nbackup: %s\n", res.SourceDir, res.BackupDir)
			ui.Success(fmt.Sprintf("Restored %s from %s", res.SourceDir, res.BackupDir))
			return nil
		},
	}
	cmd.Flags().StringVar(&backup, "backup", "", "backup directory to restore (default: latest)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing source directory")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	addLayoutFlags(cmd)
	return cmd
}
