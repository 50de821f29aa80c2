package graph_test

import (
	"fmt"

	"github.com/matzehuels/mindtower/pkg/graph"
)

func ExampleGraph_Validate() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "root", Label: "Cells"}, {ID: "n1", Label: "Nucleus", Level: 1}},
		Edges: []graph.Edge{{Source: "root", Target: "n2"}},
	}
	fmt.Println(g.Validate())
	// Output: INVALID_GRAPH: edge 0 () references unknown target "n2"
}

func ExampleNewIndex() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "root"}, {ID: "a", Level: 1}, {ID: "b", Level: 1}},
		Edges: []graph.Edge{{Source: "root", Target: "b"}, {Source: "root", Target: "a"}},
	}
	ix := graph.NewIndex(&g)
	fmt.Println(ix.Children("root"))
	// Output: [b a]
}
