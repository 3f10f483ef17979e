package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courierflow/courier/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the workflow graph visualization",
	Long:  `Compiles the triage workflow and outputs a Mermaid diagram (graph TD) representing its topology.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newLocalService(cmd, true)
		if err != nil {
			return err
		}

		output := graph.GenerateMermaid(svc.Workflow().Graph().Topology())
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
