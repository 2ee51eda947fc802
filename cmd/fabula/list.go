package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stories in the collection",
	Run: func(cmd *cobra.Command, args []string) {
		editor, err := cli.NewEditor(context.Background(), editorOptions(cmd))
		if err != nil {
			fmt.Printf("Error initializing fabula: %v\n", err)
			os.Exit(1)
		}

		ids := editor.StoryIDs()
		if len(ids) == 0 {
			fmt.Println("No stories yet. Create one with 'fabula new'.")
			return
		}
		for _, id := range ids {
			story, err := editor.Story(id)
			if err != nil {
				continue
			}
			title := story.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s  %s\n", id, title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
