package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const versionStr = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version [flags]",
	Short: "Prints the version and exits.",
	Run:   version,
}

func version(cmd *cobra.Command, args []string) {
	fmt.Printf("%s\n", versionStr)
	os.Exit(0)
}
