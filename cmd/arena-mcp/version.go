package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("arena-mcp %s\n", version.Get().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
