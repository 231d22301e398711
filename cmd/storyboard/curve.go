package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/presentation/tui"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
)

var curveCmd = &cobra.Command{
	Use:   "curve [easing]",
	Short: "Plot an easing curve",
	Long: `Plots the progress curve of a named easing or a cubic-bezier(x1,y1,x2,y2) expression.
Without arguments it lists the named easings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(interpolate.Names(), "\n"))
			return nil
		}
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		plot, _ := tui.PlotEasing(domain.Easing(args[0]), width, height)
		fmt.Fprintln(cmd.OutOrStdout(), plot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
	curveCmd.Flags().Int("width", 60, "Plot width in columns")
	curveCmd.Flags().Int("height", 15, "Plot height in rows")
}
