package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/fabulark/fabula/internal/validator"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [story-id]",
	Short: "Check a story graph for consistency",
	Long:  `Checks a story for broken edges and malformed branches. Without an argument, all stories in the collection are checked.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("file", "", "Validate a story document file instead of the collection")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		story, err := domain.Decode(data)
		if err != nil {
			return fmt.Errorf("invalid story document: %w", err)
		}
		return validator.ValidateStory(story)
	}

	editor, err := cli.NewEditor(context.Background(), editorOptions(cmd))
	if err != nil {
		return err
	}

	ids := editor.StoryIDs()
	if len(args) > 0 {
		ids = args
	}

	for _, id := range ids {
		story, err := editor.Story(id)
		if err != nil {
			return err
		}
		if err := validator.ValidateStory(story); err != nil {
			return fmt.Errorf("story %s: %w", id, err)
		}
	}
	return nil
}
