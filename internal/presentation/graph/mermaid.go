// Package graph renders compiled workflow topologies as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	enginegraph "github.com/courierflow/courier/pkg/graph"
)

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a topology.
// Semantic styling:
//   - Start node: ((Circle))
//   - Terminal marker: ((End)) stadium, emitted once
//   - Conditional edges: labeled with their branch name
func GenerateMermaid(t enginegraph.Topology) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	hasEnd := false
	for _, node := range t.Nodes {
		safeID := sanitizeMermaidID(node)
		opener, closer := "[", "]"
		if node == t.Start {
			opener, closer = "((", "))" // Circle
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node, closer))
	}

	for _, edge := range t.Edges {
		from := sanitizeMermaidID(edge.From)
		to := sanitizeMermaidID(edge.To)
		if edge.To == enginegraph.End {
			to = "END"
			hasEnd = true
		}

		arrow := "-->"
		if edge.Conditional {
			// Escape double quotes in branch label for Mermaid
			label := strings.ReplaceAll(string(edge.Branch), "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	if hasEnd {
		sb.WriteString("    END((\"End\"))\n")
	}
	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
