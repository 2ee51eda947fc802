package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fabulark/fabula"
	"github.com/fabulark/fabula/internal/cli"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <story-id>",
	Short: "Generate the texts of a story, one node at a time",
	Long: `Walks the generatable nodes of a story and requests a text for each
one through the LLM bridge. The story is only updated after every node
succeeded; a failed request leaves it untouched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(cmd, args[0]); err != nil {
			fmt.Printf("Generation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("from", "", "Only generate nodes reachable from this node ID")
}

func runGenerate(cmd *cobra.Command, storyID string) error {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Cancel()

	editor, err := cli.NewEditor(sc, editorOptions(cmd))
	if err != nil {
		return err
	}

	var opts []fabula.RunOption
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		opts = append(opts, fabula.FromNode(from))
	}

	run, err := editor.Generate(storyID, opts...)
	if err != nil {
		return err
	}
	if run.Total() == 0 {
		fmt.Println("Nothing to generate.")
		return nil
	}

	fmt.Printf("Generating %d node(s)...\n", run.Total())
	for !run.Done() {
		p, err := run.Step(sc)
		if err != nil {
			if sc.Signal() != nil {
				fmt.Println("\nInterrupted, story left untouched.")
				return nil
			}
			return err
		}
		fmt.Printf("  [%d/%d] %s\n", p.Current, p.Total, p.Label)
	}

	if _, err := run.Commit(); err != nil {
		return err
	}
	if err := editor.Close(context.Background()); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}
