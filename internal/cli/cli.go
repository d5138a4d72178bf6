//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for cannetl.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cannalytics/cannetl/internal/config"
	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	rawDir   string
	outDir   string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "cannetl",
		Short: "ETL pipeline for Canadian cannabis market and crime datasets",
		Long: `cannetl ingests the public cannabis datasets (store locations,
sales, retail trade, and crime statistics from Health Canada, Statistics
Canada, and city open-data portals), cleans and merges them, and writes
the normalized tables the dashboard and report are built on.

Each run is a full rebuild: raw files are read-only inputs and every
final output is overwritten atomically, so re-running on identical raw
data produces byte-identical outputs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./cannetl.yaml)")
	rootCmd.PersistentFlags().StringVar(&rawDir, "raw-dir", "",
		"directory containing raw input datasets")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "",
		"directory for final pipeline outputs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loadCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if rawDir != "" {
		cfg.RawDir = rawDir
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available datasets",
	Long: `List all registered dataset processors. A pipeline run processes
all of them unless --datasets restricts the selection.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available datasets:")
		cmd.Println()
		for _, ds := range etl.All() {
			requires := ""
			if len(ds.Requires()) > 0 {
				requires = fmt.Sprintf(" (requires: %v)", ds.Requires())
			}
			cmd.Printf("  %-12s - %s%s\n", ds.Name(), ds.Description(), requires)
		}
	},
}
