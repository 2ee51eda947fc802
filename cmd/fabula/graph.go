package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/fabulark/fabula/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <story-id>",
	Short: "Export the story graph visualization",
	Long:  `Inspects a story and outputs a Mermaid diagram (graph TD) representing its branches.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, err := cli.NewEditor(context.Background(), editorOptions(cmd))
		if err != nil {
			fmt.Printf("Error initializing fabula: %v\n", err)
			os.Exit(1)
		}

		story, err := editor.Story(args[0])
		if err != nil {
			fmt.Printf("Error loading story: %v\n", err)
			os.Exit(1)
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(story.Flow))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
