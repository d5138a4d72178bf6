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

	"github.com/cannalytics/cannetl/internal/pgload"
)

var (
	loadConnection string
	loadSchema     string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load final outputs into PostgreSQL",
	Long: `Push every final CSV in the output directory into the target
PostgreSQL schema, one table per file. Tables are dropped and rebuilt so
the database mirrors the latest run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loadConnection != "" {
			cfg.Load.Connection = loadConnection
		}
		if loadSchema != "" {
			cfg.Load.Schema = loadSchema
		}
		if err := cfg.ValidateLoad(); err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := pgload.Connect(ctx, cfg.Load.Connection)
		if err != nil {
			return err
		}
		defer pool.Close()

		return pgload.LoadDir(ctx, pool, cfg.OutDir, cfg.Load.Schema)
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadConnection, "connection", "",
		"PostgreSQL connection string")
	loadCmd.Flags().StringVar(&loadSchema, "schema", "",
		"target schema for loaded tables (default from config)")
}
