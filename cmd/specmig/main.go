package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/specmig/internal/ui"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	root       string
	configFile string
	noColor    bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		ui.Error(fmt.Sprintf("error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "specmig",
		Short: "Migrate a spec tree to the ID-only layout",
		Long: `specmig restructures a hierarchical specification tree named
<id>-epic-*/<id>-feature-*/<id>-task-*.spec.md into an ID-only layout
(<epic>/epic.md, <epic>/<feature>/spec.md, <epic>/<feature>/<task>.md),
rewriting internal links, merging context notes and writing an index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(opts.noColor, opts.verbose)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.root, "root", ".", "workspace root directory")
	pf.StringVar(&opts.configFile, "config", "", "config file (default: <root>/specmig.yaml)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMigrateCmd(opts),
		newInitCmd(opts),
		newStatsCmd(opts),
		newInventoryCmd(opts),
		newHistoryCmd(opts),
		newPromoteCmd(opts),
		newRollbackCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	fmt.Fprintf(w, "specmig version %s\n", v)
}
