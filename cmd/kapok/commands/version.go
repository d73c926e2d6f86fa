package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// VersionCmd prints the kapok version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kapok version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kapok", version())
	},
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
