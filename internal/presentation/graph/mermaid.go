// Package graph renders a story graph as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/fabulark/fabula/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a story flow.
// It applies semantic styling:
// - Scene: [Rectangle]
// - Choice: {Diamond}
// - Info: [/Parallelogram/]
// Choice edges carry their branch text as the arrow label.
func GenerateMermaid(flow domain.Flow) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range flow.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.KindChoice:
			opener, closer = "{", "}"
		case domain.KindInfo:
			opener, closer = "[/", "/]"
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(label), closer))
	}

	for _, edge := range flow.Edges {
		safeFrom := sanitizeMermaidID(edge.Source)
		safeTo := sanitizeMermaidID(edge.Target)

		arrow := "-->"
		if text, ok := branchText(flow, edge); ok {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeMermaidLabel(text))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	return sb.String()
}

// branchText resolves the branch an edge handle points at.
func branchText(flow domain.Flow, edge domain.Edge) (string, bool) {
	if edge.Handle == nil {
		return "", false
	}
	node, ok := flow.NodeByID(edge.Source)
	if !ok || node.Kind != domain.KindChoice || node.Choice == nil {
		return "", false
	}
	k := *edge.Handle
	if k < 0 || k >= len(node.Choice.Branches) {
		return "", false
	}
	return node.Choice.Branches[k].Text, true
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
