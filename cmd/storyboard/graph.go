package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <artboard|document>",
	Short: "Export the state graph visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of the artboard's states, transitions and default chain.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, id, err := openArtboard(cmd, args)
		if err != nil {
			return err
		}
		defer eng.Close()

		var overlay *graph.GraphOverlay
		if at, _ := cmd.Flags().GetFloat64("at"); cmd.Flags().Changed("at") {
			frame := eng.Sample(id, at)
			overlay = &graph.GraphOverlay{CurrentState: frame.FromStateID}
			if frame.ToStateID != "" {
				overlay.VisitedStates = []string{frame.FromStateID}
				overlay.CurrentState = frame.ToStateID
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Studio().Snapshot(id), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Float64("at", 0, "Highlight the state active at this time (ms)")
}
