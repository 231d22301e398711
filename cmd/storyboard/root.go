package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/internal/cli"
	"github.com/aretw0/storyboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "Storyboard is a state-based animation timeline engine",
	Long: `Storyboard compiles artboards of animation states and transitions into
timelines, samples them at any instant and plays them back headless or over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a storyboard.yaml configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off (overrides log_level)")
	rootCmd.PersistentFlags().String("dir", "", "Directory of artboard documents (selects the file store)")
}

// setup resolves configuration and logging from the persistent flags.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	dir, _ := cmd.Flags().GetString("dir")

	cfg, err := cli.LoadConfig(cli.Options{ConfigPath: configPath, LogLevel: level, Dir: dir})
	if err != nil {
		return nil, nil, err
	}
	return cfg, cli.NewLogger(cfg.LogLevel), nil
}

// openArtboard builds an engine and resolves args[0] to an artboard.
func openArtboard(cmd *cobra.Command, args []string, opts ...cli.EngineOption) (*storyboard.Engine, string, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, "", err
	}
	eng, err := cli.CreateEngine(cfg, logger, opts...)
	if err != nil {
		return nil, "", err
	}
	id, err := cli.OpenArtboard(cmd.Context(), eng, args[0])
	if err != nil {
		_ = eng.Close()
		return nil, "", err
	}
	return eng, id, nil
}
