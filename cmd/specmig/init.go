package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + core.ConfigFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := workspaceFs(opts.root)
			if err != nil {
				return err
			}
			p, err := core.WriteDefaultConfig(fsys)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			ui.Success("Wrote " + p)
			return nil
		},
	}
}
