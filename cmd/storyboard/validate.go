package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard/internal/validator"
	"github.com/aretw0/storyboard/pkg/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document...>",
	Short: "Check documents for consistency",
	Long:  `Reports dangling references, duplicate transitions, unknown easings and invalid timings.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if err := runValidate(path); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: validation failed: %v\n", path, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: document is valid! ✅\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	doc, err := file.ReadDocument(path)
	if err != nil {
		return err
	}
	return validator.ValidateDocument(*doc)
}
