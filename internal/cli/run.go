//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/output"
)

var (
	runDatasets    []string
	runNoGeocode   bool
	runSQLite      string
	runGeocoderKey string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ETL pipeline",
	Long: `Run the pipeline: read raw datasets, clean and merge them, and write
the final tables plus the shape report under the output directory.

The run is a full rebuild. Raw inputs are never modified and every final
output is replaced atomically, so rerunning on the same raw data yields
byte-identical files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(runDatasets) > 0 {
			cfg.Run.Datasets = runDatasets
		}
		if runNoGeocode {
			cfg.Run.Geocode = false
		}
		if runSQLite != "" {
			cfg.Run.SQLite = runSQLite
		}
		if runGeocoderKey != "" {
			cfg.Geocoder.APIKey = runGeocoderKey
		}
		if err := cfg.ValidateRun(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := &etl.Env{RawDir: cfg.RawDir}
		if cfg.Run.Geocode {
			env.Geocoder = geo.NewClient(
				geo.NewGoogleResolver(cfg.Geocoder.APIKey),
				time.Duration(cfg.Geocoder.DelayMs)*time.Millisecond,
				cfg.Geocoder.MaxRetries)
		} else {
			logging.Info().Msg("Geocoding disabled; rows without coordinates stay null")
		}

		writer, err := output.NewWriter(cfg.OutDir)
		if err != nil {
			return err
		}

		runner, err := etl.NewRunner(etl.RunnerConfig{
			Datasets:   cfg.Run.Datasets,
			Env:        env,
			Writer:     writer,
			SQLitePath: cfg.Run.SQLite,
		})
		if err != nil {
			return err
		}

		logging.Info().
			Str("raw_dir", cfg.RawDir).
			Str("out_dir", cfg.OutDir).
			Msg("Starting pipeline run")

		return runner.Run(ctx)
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runDatasets, "datasets", nil,
		"datasets to process (default: all; requirements are pulled in automatically)")
	runCmd.Flags().BoolVar(&runNoGeocode, "no-geocode", false,
		"skip geocoding; rows lacking coordinates keep null coordinates")
	runCmd.Flags().StringVar(&runSQLite, "sqlite", "",
		"also mirror final tables into this SQLite database")
	runCmd.Flags().StringVar(&runGeocoderKey, "geocoder-key", "",
		"Google Maps Geocoding API key (overrides config)")
}
