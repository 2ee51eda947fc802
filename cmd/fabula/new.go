package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/spf13/cobra"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a story, empty or imported from a document file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runNew(cmd); err != nil {
			fmt.Printf("Error creating story: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("from", "", "Path of a serialized story document to import")
}

func runNew(cmd *cobra.Command) error {
	ctx := context.Background()
	editor, err := cli.NewEditor(ctx, editorOptions(cmd))
	if err != nil {
		return err
	}

	var id string
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		data, err := os.ReadFile(from)
		if err != nil {
			return err
		}
		id, _, err = editor.ImportStory(data)
		if err != nil {
			return fmt.Errorf("invalid story document: %w", err)
		}
	} else {
		id, _ = editor.CreateStory()
	}

	if err := editor.Close(ctx); err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}
