package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formpost"
	"github.com/aretw0/formpost/internal/platform"
	"github.com/aretw0/formpost/pkg/fieldgroup"
)

var (
	verbose    bool
	logFormat  string
	configPath string
	storeKind  string
	storePath  string
	storeDSN   string
	versioned  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formpost",
	Short: "Edit record titles and bodies from front-end form submissions",
	Long: `formpost maps two virtual form fields onto the title and body of a record.
Submissions are run through the same save pipeline a host would use: the
title/content fields update the record, everything else is stored as fields.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		slog.SetDefault(platform.NewLogger(os.Stderr, level, logFormat))
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	flags.StringVar(&configPath, "config", "", "Config file (default: formpost.yaml found upwards from the working directory)")
	flags.StringVar(&storeKind, "store", "fs", "Record store (fs or postgres)")
	flags.StringVar(&storePath, "path", ".", "Record directory of the fs store")
	flags.StringVar(&storeDSN, "dsn", "", "Connection string of the postgres store")
	flags.BoolVar(&versioned, "versioned", false, "Commit every fs store write with git")
}

// openPlugin builds a plugin from the config file, the environment and the
// flags that were set explicitly, in that order. The default logger is
// replaced by the plugin's, which follows the resolved log settings.
func openPlugin(ctx context.Context, cmd *cobra.Command) (*formpost.Plugin, *fieldgroup.Registry, error) {
	registry := formpost.NewRegistry()
	opts := []formpost.Option{
		formpost.WithLogOutput(os.Stderr),
		formpost.WithRegistry(registry),
	}

	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, err := formpost.FindConfig(wd); err == nil {
				path = found
			}
		}
	}
	if path != "" {
		slog.Debug("using config file", "path", path)
		opts = append(opts, formpost.WithConfigFile(path))
	} else {
		opts = append(opts, formpost.WithEnvironment())
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") && verbose {
		opts = append(opts, formpost.WithLogLevel("debug"))
	}
	if flags.Changed("log-format") {
		opts = append(opts, formpost.WithLogFormat(logFormat))
	}
	if flags.Changed("store") {
		opts = append(opts, formpost.WithStoreKind(storeKind))
	}
	if flags.Changed("path") {
		opts = append(opts, formpost.WithPath(storePath))
	}
	if flags.Changed("dsn") {
		opts = append(opts, formpost.WithDSN(storeDSN))
	}
	if flags.Changed("versioned") {
		opts = append(opts, formpost.WithVersioning(versioned))
	}

	p, err := formpost.New(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(p.Logger())
	return p, registry, nil
}
