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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cannalytics/cannetl/internal/logging"
)

var initForce bool

const starterConfig = `# cannetl configuration
raw_dir: data/raw
out_dir: data/final
log_level: info

run:
  geocode: true
  # datasets: [stores, sales]
  # sqlite: data/final/cannetl.db

geocoder:
  api_key: ""
  delay_ms: 200
  max_retries: 3

seed:
  rows: 500
  seed: 0

load:
  connection: ""
  schema: cannetl
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter cannetl.yaml in the current directory with the
default settings filled in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "cannetl.yaml"

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		logging.Info().Str("path", path).Msg("Wrote starter config")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing config file")
}
