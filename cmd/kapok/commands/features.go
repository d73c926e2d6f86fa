package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapok-dev/kapok/compiler/gen"
)

// FeaturesCmd lists the optional generation features.
var FeaturesCmd = &cobra.Command{
	Use:   "features",
	Short: "List the optional generation features",
	RunE:  runFeatures,
}

func runFeatures(cmd *cobra.Command, args []string) error {
	for _, f := range gen.AllFeatures {
		state := "off"
		if f.Default {
			state = "on"
		}
		fmt.Printf("%-14s %-13s default %-4s %s\n", f.Name, stageName(f.Stage), state, f.Description)
	}
	return nil
}

func stageName(s gen.Stage) string {
	switch s {
	case gen.Experimental:
		return "experimental"
	case gen.Alpha:
		return "alpha"
	case gen.Stable:
		return "stable"
	default:
		return "unknown"
	}
}
