// Package graph provides the shared data model for mind map diagrams.
//
// Every other package speaks in terms of these types: the layout engines
// mutate [Node] positions, the geometry module reads node boxes, the scorer
// compares [Edge] endpoints, and the stores persist [MindMap] documents.
//
// # Core Types
//
//   - [Node]: a labeled, positioned vertex tagged with a hierarchy level
//   - [Edge]: a directed connection between two node IDs
//   - [Graph]: ordered nodes plus edges, the flat input of every engine
//   - [MindMap]: a titled document wrapping a Graph
//   - [Layout]: serialized output of a layout run
//
// # Coordinates
//
// Node positions follow the rendering convention: [Node.Position] is the
// top-left corner of the node box and [Node.Width]/[Node.Height] are its
// measured size. [Node.Center] converts to the box centre, which is what the
// layout engines reason about.
//
// # Validation Boundary
//
// Layout engines and the scorer assume a structurally valid graph. Use
// [Graph.Validate] where graphs enter the system (file loading, stores, the
// HTTP API) to reject duplicate IDs and dangling edge references.
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "root", "label": "Cells", "level": 0}],
//	  "edges": [{"id": "e1", "source": "root", "target": "n1"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("map.json")
//	graph.WriteGraphFile(g, "output.json")
//	data, _ := graph.MarshalGraph(g)
//	parsed, _ := graph.UnmarshalGraph(data)
package graph
