package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/fabulark/fabula/internal/presentation/tui"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/spf13/cobra"
)

// textsCmd represents the texts command
var textsCmd = &cobra.Command{
	Use:   "texts <story-id>",
	Short: "Print the generated texts of a story",
	Long:  `Walks the story nodes in graph order and prints the current generated text of each scene and choice, rendered as markdown.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTexts(cmd, args[0]); err != nil {
			fmt.Printf("Error printing texts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(textsCmd)
	textsCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
}

func runTexts(cmd *cobra.Command, storyID string) error {
	editor, err := cli.NewEditor(context.Background(), editorOptions(cmd))
	if err != nil {
		return err
	}

	story, err := editor.Story(storyID)
	if err != nil {
		return err
	}

	var doc strings.Builder
	if story.Title != "" {
		fmt.Fprintf(&doc, "# %s\n\n", story.Title)
	}
	for _, node := range story.Flow.Nodes {
		text := currentText(story, node)
		if text == "" {
			continue
		}
		fmt.Fprintf(&doc, "## %s\n\n%s\n\n", node.Label, text)
	}

	if doc.Len() == 0 {
		fmt.Println("No generated texts yet. Run 'fabula generate' first.")
		return nil
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Print(doc.String())
		return nil
	}

	render := tui.NewRenderer()
	out, err := render(doc.String())
	if err != nil {
		// Styling failed, fall back to the raw markdown.
		fmt.Print(doc.String())
		return nil
	}
	fmt.Print(out)
	return nil
}

func currentText(story *domain.Story, node domain.Node) string {
	switch node.Kind {
	case domain.KindScene:
		if scene, ok := story.Scene(node.ID); ok {
			return scene.CurrentText()
		}
	case domain.KindChoice:
		if choice, ok := story.Choice(node.ID); ok {
			return choice.CurrentText()
		}
	}
	return ""
}
