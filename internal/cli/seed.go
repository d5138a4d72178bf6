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
	"github.com/spf13/cobra"

	"github.com/cannalytics/cannetl/internal/datagen"
	"github.com/cannalytics/cannetl/internal/logging"
)

var (
	seedRows int
	seedSeed uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic raw datasets",
	Long: `Write synthetic raw input files under the raw directory, in the same
layout and column vocabulary as the public extracts. Intended for demos
and for exercising the pipeline end to end without the real downloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedRows > 0 {
			cfg.Seed.Rows = seedRows
		}
		if seedSeed != 0 {
			cfg.Seed.Seed = seedSeed
		}
		if err := cfg.ValidateSeed(); err != nil {
			return err
		}

		logging.Info().
			Str("raw_dir", cfg.RawDir).
			Int("rows", cfg.Seed.Rows).
			Msg("Generating synthetic raw datasets")

		gen := datagen.NewGenerator(cfg.Seed.Seed, cfg.Seed.Rows)
		return gen.WriteAll(cfg.RawDir)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedRows, "rows", 0,
		"approximate row count per generated file (default from config)")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"RNG seed for reproducible data (0 = time-based)")
}
