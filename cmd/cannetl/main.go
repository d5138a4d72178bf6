// Package main is the entry point for cannetl.
package main

import (
	"fmt"
	"os"

	"github.com/cannalytics/cannetl/internal/cli"

	// Register datasets
	_ "github.com/cannalytics/cannetl/internal/datasets/citycrime"
	_ "github.com/cannalytics/cannetl/internal/datasets/crime"
	_ "github.com/cannalytics/cannetl/internal/datasets/merged"
	_ "github.com/cannalytics/cannetl/internal/datasets/retailtrade"
	_ "github.com/cannalytics/cannetl/internal/datasets/sales"
	_ "github.com/cannalytics/cannetl/internal/datasets/stores"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
