package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

func newPromoteCmd(opts *globalOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Replace the source tree with the migrated tree",
		Long: `Rename the source directory to <source>_old and the target directory to
the source directory.`,
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
			if !yes {
				ok, err := confirm(
					fmt.Sprintf("Promote %s to %s?", cfg.TargetDir, cfg.SourceDir),
					fmt.Sprintf("%s will be kept as %s_old.", cfg.SourceDir, core.NormalizePath(cfg.SourceDir)),
				)
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			res, err := core.Promote(fsys, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\nold: %s\n", res.SourceDir, res.OldSourceDir)
			ui.Success(fmt.Sprintf("Promoted %s (previous tree in %s)", res.SourceDir, res.OldSourceDir))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	addLayoutFlags(cmd)
	return cmd
}
