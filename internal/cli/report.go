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

	"github.com/cannalytics/cannetl/internal/output"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the dataset shape report",
	Long: `Scan the final CSVs in the output directory and rewrite the shape
report from what is actually on disk. Useful after hand-inspecting or
copying outputs around.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		report, err := output.WriteShapeReport(cfg.OutDir, nil)
		if err != nil {
			return err
		}
		cmd.Print(report)
		return nil
	},
}
