package flow

import (
	"fmt"
	"strings"
)

type NodeKind string

const (
	KindTerminal NodeKind = "terminal"
	KindModel    NodeKind = "model"
	KindTool     NodeKind = "tool"
)

type Node struct {
	ID   string
	Kind NodeKind
}

const (
	Start = "__start__"
	End   = "__end__"
)

type Edge struct {
	From      string
	To        string
	Condition string
}

// Graph describes a fixed pipeline for display. Nothing executes it.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Calc is interpret fanning out by label to one arithmetic or echo node.
func Calc() Graph {
	return Graph{
		Nodes: []Node{
			{ID: Start, Kind: KindTerminal},
			{ID: "interpret", Kind: KindModel},
			{ID: "add_tool", Kind: KindTool},
			{ID: "subtract_tool", Kind: KindTool},
			{ID: "multiply_tool", Kind: KindTool},
			{ID: "echo", Kind: KindTool},
			{ID: End, Kind: KindTerminal},
		},
		Edges: []Edge{
			{From: Start, To: "interpret"},
			{From: "interpret", To: "add_tool", Condition: "ADD"},
			{From: "interpret", To: "subtract_tool", Condition: "SUBTRACT"},
			{From: "interpret", To: "multiply_tool", Condition: "MULTIPLY"},
			{From: "interpret", To: "echo", Condition: "ECHO"},
			{From: "add_tool", To: End},
			{From: "subtract_tool", To: End},
			{From: "multiply_tool", To: End},
			{From: "echo", To: End},
		},
	}
}

func Catalog() Graph {
	return Graph{
		Nodes: []Node{
			{ID: Start, Kind: KindTerminal},
			{ID: "interpret", Kind: KindModel},
			{ID: "dispatcher", Kind: KindTool},
			{ID: End, Kind: KindTerminal},
		},
		Edges: []Edge{
			{From: Start, To: "interpret"},
			{From: "interpret", To: "dispatcher"},
			{From: "dispatcher", To: End},
		},
	}
}

// Render produces a Mermaid flowchart.
//   - terminal: ((circle))
//   - model: {{hexagon}}
//   - tool: [[subroutine]]
func (g Graph) Render() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		opener, closer := "[", "]"

		switch node.Kind {
		case KindTerminal:
			opener, closer = "((", "))"
		case KindModel:
			opener, closer = "{{", "}}"
		case KindTool:
			opener, closer = "[[", "]]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", node.ID, opener, node.ID, closer))
	}

	for _, edge := range g.Edges {
		arrow := "-->"
		if edge.Condition != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(edge.Condition, "\"", "'"))
		}

		sb.WriteString(fmt.Sprintf("    %s %s %s\n", edge.From, arrow, edge.To))
	}

	return sb.String()
}

// ByName returns the graph for a pipeline name.
func ByName(name string) (Graph, error) {
	switch strings.ToLower(name) {
	case "calc":
		return Calc(), nil
	case "catalog":
		return Catalog(), nil
	default:
		return Graph{}, fmt.Errorf("unknown pipeline %q, expected calc or catalog", name)
	}
}
