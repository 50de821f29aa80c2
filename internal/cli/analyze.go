package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/score"
)

// anchorsCommand prints where each edge attaches to its nodes.
func (c *CLI) anchorsCommand() *cobra.Command {
	var (
		estimate bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "anchors [layout.json]",
		Short: "Show edge attachment points of a positioned diagram",
		Long: `Show edge attachment points of a positioned diagram.

For every edge whose endpoints are placed and measured, anchors prints the
boundary points where the edge leaves its source and enters its target, the
box side of each point and the SVG path of the curve between them. Edges
touching an unplaced or unmeasured node are skipped.

The input may be a layout.json or a graph.json whose nodes carry positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.readGraph(args[0])
			if err != nil {
				return err
			}
			ctl := diagram.New(g, diagram.ModeView, diagram.WithLogger(c.Logger), diagram.WithContext(cmd.Context()))
			if estimate {
				ctl.MeasureAll()
			}
			edges := ctl.Anchors()

			if asJSON {
				return c.printJSON(edges)
			}
			printAnchors(edges, g.EdgeCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&estimate, "estimate", false, "size unmeasured nodes from their labels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// scoreCommand compares a submitted diagram against the original.
func (c *CLI) scoreCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score [original.json] [submitted.json]",
		Short: "Score a reconstructed mind map against the original",
		Long: `Score a reconstructed mind map against the original.

Both files are graph documents; only their edges are compared. Edges are
undirected for scoring: A→B matches B→A. The score is the percentage of
original connections present in the submission, rounded to the nearest
integer. Extra connections do not lower the score but are listed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := c.readGraph(args[0])
			if err != nil {
				return err
			}
			submitted, err := c.readGraph(args[1])
			if err != nil {
				return err
			}
			report := score.Compare(original.Edges, submitted.Edges)
			if asJSON {
				return c.printJSON(report)
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")

	return cmd
}

// printJSON writes v as indented JSON to the command output.
func (c *CLI) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

// graphEdges returns the edges of g, never nil.
func graphEdges(g graph.Graph) []graph.Edge {
	if g.Edges == nil {
		return []graph.Edge{}
	}
	return g.Edges
}
