package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/cli"
	"github.com/aretw0/storyboard/pkg/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Import a JSON or YAML document into the configured store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		eng, err := cli.CreateEngine(cfg, logger, cli.Manual())
		if err != nil {
			return err
		}
		defer eng.Close()

		artboard, _ := cmd.Flags().GetString("artboard")
		merge, _ := cmd.Flags().GetBool("merge")
		mode := domain.ImportReplace
		if merge {
			if artboard == "" {
				return fmt.Errorf("--merge requires --artboard")
			}
			if _, err := eng.Load(cmd.Context(), artboard, domain.ImportReplace); err != nil {
				logger.Debug("nothing to merge into", "artboard", artboard, "err", err)
			}
			mode = domain.ImportMerge
		}

		id, res, err := cli.ImportFile(eng, args[0], artboard, mode)
		if err != nil {
			return err
		}
		if err := eng.Save(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d states, %d transitions, %d chains into %s\n",
			res.States, res.Transitions, res.Chains, id)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <artboard> <document>",
	Short: "Export an artboard from the configured store to a JSON or YAML document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, id, err := openArtboard(cmd, args[:1], cli.Manual())
		if err != nil {
			return err
		}
		defer eng.Close()
		if err := cli.ExportFile(eng, id, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", id, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
	importCmd.Flags().String("artboard", "", "Target artboard id (default: the document's id or file name)")
	importCmd.Flags().Bool("merge", false, "Merge into the stored artboard instead of replacing it")
}
