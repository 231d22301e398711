package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/presentation/tui"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <artboard|document>",
	Short: "Print the compiled timeline of an artboard",
	Long: `Compiles the artboard and prints its segments as a table.
With --markdown the full artboard report (segments and chains) is rendered through glamour.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, id, err := openArtboard(cmd, args)
		if err != nil {
			return err
		}
		defer eng.Close()

		tl := eng.Timeline(id)
		if md, _ := cmd.Flags().GetBool("markdown"); md {
			out, err := tui.NewRenderer()(tui.TimelineMarkdown(eng.Studio().Snapshot(id), tl))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTimeline(tl))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().Bool("markdown", false, "Render a markdown report instead of a table")
}
