package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kapok-dev/kapok/cmd/kapok/commands"
)

var rootCmd = &cobra.Command{
	Use:   "kapok",
	Short: "kapok - fake implementation generator for Kotlin contracts",
	Long: `kapok generates configurable fake implementations from declaration
manifests: one implementation class, one configuration scope and one
construction function per marked contract.

Available commands:
  generate - Generate fakes from a declaration manifest
  watch    - Regenerate whenever the manifest changes
  features - List the optional generation features
  version  - Print the kapok version

Examples:
  kapok generate --manifest fakes.yaml --out build/generated
  kapok generate --manifest fakes.yaml --out build/generated --feature calltracking
  kapok watch --manifest fakes.yaml --out build/generated`,
}

func init() {
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.FeaturesCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
