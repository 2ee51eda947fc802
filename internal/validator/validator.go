// Package validator checks story graphs for structural problems before
// generation or export.
package validator

import (
	"fmt"
	"strings"

	"github.com/fabulark/fabula/pkg/domain"
)

// ValidateStory checks a story graph for broken edges and malformed branches.
func ValidateStory(story *domain.Story) error {
	var errors []string

	nodes := make(map[string]domain.Node, len(story.Flow.Nodes))
	for _, n := range story.Flow.Nodes {
		if _, dup := nodes[n.ID]; dup {
			errors = append(errors, fmt.Sprintf("Duplicate node ID: '%s'", n.ID))
			continue
		}
		nodes[n.ID] = n
	}

	for _, n := range story.Flow.Nodes {
		switch n.Kind {
		case domain.KindScene:
			if n.Scene == nil {
				errors = append(errors, fmt.Sprintf("Scene node without payload: '%s'", n.Label))
			}
		case domain.KindChoice:
			if n.Choice == nil {
				errors = append(errors, fmt.Sprintf("Choice node without payload: '%s'", n.Label))
			} else if len(n.Choice.Branches) == 0 {
				errors = append(errors, fmt.Sprintf("Choice node without branches: '%s'", n.Label))
			}
		case domain.KindInfo:
			if n.Info == nil {
				errors = append(errors, fmt.Sprintf("Info node without payload: '%s'", n.Label))
			}
		default:
			errors = append(errors, fmt.Sprintf("Unknown node kind '%s': '%s'", n.Kind, n.Label))
		}
	}

	for _, e := range story.Flow.Edges {
		source, ok := nodes[e.Source]
		if !ok {
			errors = append(errors, fmt.Sprintf("Edge from missing node: '%s'", e.Source))
			continue
		}
		if _, ok := nodes[e.Target]; !ok {
			errors = append(errors, fmt.Sprintf("Edge to missing node: '%s'", e.Target))
		}

		// A handle selects a branch, so it only makes sense on a choice source
		// and must stay inside the branch list.
		if e.Handle != nil {
			if source.Kind != domain.KindChoice || source.Choice == nil {
				errors = append(errors, fmt.Sprintf("Edge with branch handle from non-choice node: '%s'", source.Label))
			} else if *e.Handle < 0 || *e.Handle >= len(source.Choice.Branches) {
				errors = append(errors, fmt.Sprintf("Edge handle %d out of range on choice '%s'", *e.Handle, source.Label))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
