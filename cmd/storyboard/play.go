package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/cli"
	"github.com/aretw0/storyboard/internal/presentation/tui"
	"github.com/aretw0/storyboard/pkg/domain"
)

var playCmd = &cobra.Command{
	Use:   "play <artboard|document>",
	Short: "Play an artboard headless and print its events",
	Long: `Plays the artboard timeline (or a chain with --chain) and prints playback,
segment and chain events as they happen.

By default time is simulated frame by frame; --realtime plays against the wall clock.
With --plot the chosen element property is sampled every frame and charted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, _ := cmd.Flags().GetString("chain")
		realtime, _ := cmd.Flags().GetBool("realtime")
		plot, _ := cmd.Flags().GetBool("plot")
		element, _ := cmd.Flags().GetString("element")
		property, _ := cmd.Flags().GetString("property")
		maxDuration, _ := cmd.Flags().GetFloat64("max")
		out := cmd.OutOrStdout()

		opts := []cli.EngineOption{cli.WithHooks(cli.EventPrinter(out))}
		if !realtime {
			opts = append(opts, cli.Manual())
		}
		eng, id, err := openArtboard(cmd, args, opts...)
		if err != nil {
			return err
		}
		defer eng.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		player := eng.Player(id)
		if realtime {
			if err := cli.PlayRealTime(ctx, player, chainID); err != nil {
				if sig := ctx.Signal(); sig != nil {
					fmt.Fprintf(os.Stderr, "\ninterrupted by %v\n", sig)
					return nil
				}
				return err
			}
			return nil
		}

		if !plot {
			element = ""
		}
		res, err := cli.Play(ctx, player, cli.PlayOptions{
			ChainID:     chainID,
			ElementID:   element,
			Property:    domain.AnimatableProperty(property),
			FrameRate:   eng.Config().Playback.FrameRate,
			MaxDuration: maxDuration,
		})
		if err != nil {
			return err
		}
		if !res.Finished {
			fmt.Fprintf(out, "stopped after %.0fms (%d frames)\n", res.Elapsed, res.Frames)
		}
		if plot {
			fmt.Fprintln(out, tui.PlotSeries(res.Samples, 12, fmt.Sprintf("%s.%s", element, property)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("chain", "", "Play this chain instead of the timeline")
	playCmd.Flags().Bool("realtime", false, "Play against the wall clock")
	playCmd.Flags().Bool("plot", false, "Chart an element property over the run")
	playCmd.Flags().String("element", "", "Element id to sample with --plot")
	playCmd.Flags().String("property", string(domain.PropX), "Property to sample with --plot")
	playCmd.Flags().Float64("max", cli.DefaultMaxDuration, "Stop simulated runs after this many ms")
}
