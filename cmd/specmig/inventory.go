package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

func newInventoryCmd(opts *globalOptions) *cobra.Command {
	var (
		dir    string
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Collect the frontmatter of a migrated tree",
		Long: `Read the YAML frontmatter of every epic, feature and task document and
print the inventory, or write it as JSON with --out (e.g. specs-data.json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			fsys, err := workspaceFs(opts.root)
			if err != nil {
				return err
			}
			if dir == "" {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				dir = cfg.TargetDir
			}

			inv, err := core.BuildInventory(fsys, dir)
			if err != nil {
				return err
			}

			if out != "" {
				data, err := core.MarshalInventory(inv)
				if err != nil {
					return err
				}
				if err := afero.WriteFile(fsys, out, data, 0o644); err != nil {
					return err
				}
				ui.Success("Wrote " + out)
				return nil
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), inv)
			}
			return printInventoryText(cmd.OutOrStdout(), inv)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "tree to read (default: target_dir)")
	cmd.Flags().StringVar(&out, "out", "", "write the JSON inventory to this file (relative to the root)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	return cmd
}
