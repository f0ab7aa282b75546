package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryotapoi/specmig/internal/core"
)

const envPrefix = "SPECMIG"

// loadConfig resolves the layout: flags > SPECMIG_* env > config file >
// defaults. A missing specmig.yaml is not an error; a missing file named
// by --config is.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (core.Config, error) {
	v := viper.New()
	def := core.DefaultConfig()
	v.SetDefault("source_dir", def.SourceDir)
	v.SetDefault("target_dir", def.TargetDir)
	v.SetDefault("context_dirs", def.ContextDirs)
	v.SetDefault("backup_prefix", def.BackupPrefix)
	v.SetDefault("report_file", def.ReportFile)
	v.SetDefault("mappings_file", def.MappingsFile)
	v.SetDefault("index_title", def.IndexTitle)
	v.SetDefault("ledger", def.Ledger)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(core.ConfigFileName, filepath.Ext(core.ConfigFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(opts.root)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.configFile != "" || !errors.As(err, &notFound) {
			return core.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for _, name := range []string{"source", "target"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name+"_dir", f); err != nil {
				return core.Config{}, err
			}
		}
	}

	var cfg core.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return core.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// addLayoutFlags registers the per-command overrides bound by loadConfig.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "source spec directory (overrides source_dir)")
	cmd.Flags().String("target", "", "target directory (overrides target_dir)")
}
