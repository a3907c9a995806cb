package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobinsight/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jobreport %s\n", config.AppVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
