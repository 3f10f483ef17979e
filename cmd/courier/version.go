package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courierflow/courier"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of courier",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "courier version %s\n", courier.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
