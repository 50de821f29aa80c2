// Package pkg provides the core libraries for Mindtower mind map layout,
// rendering and play.
//
// # Overview
//
// A mind map is a graph of labelled nodes with a hierarchy level. The pkg
// directory is organized into four main areas:
//
//  1. [graph], [geometry], [style] - Document types, box geometry and the
//     per-level appearance of nodes
//  2. [layout/radial], [layout/force] - Concentric ring layout and the
//     interactive force simulation
//  3. [diagram], [score], [game] - The editing controller, edge scoring and
//     reconstruction game sessions
//  4. [pipeline], [render], [api] - Orchestration (layout → render), output
//     sinks and the HTTP service
//
// Supporting packages: [config] (TOML, .env and environment), [errors]
// (error codes shared by the CLI and the API), [store] (mind map storage),
// [observability] (layout and storage hooks) and [buildinfo].
//
// # Architecture
//
// The typical data flow through Mindtower:
//
//	Graph document (JSON)
//	         ↓
//	    [graph] package (normalize + validate)
//	         ↓
//	    [layout/radial] or [layout/force] (positions)
//	         ↓
//	    [diagram] package (measurement + edge anchors)
//	         ↓
//	    [render] package → SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Lay out and render a mind map:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/mindtower/pkg/graph"
//	    "github.com/matzehuels/mindtower/pkg/pipeline"
//	)
//
//	g, _ := graph.ReadGraphFile("cell.json")
//	runner := pipeline.NewRunner(nil)
//	result, _ := runner.Execute(context.Background(), g, pipeline.Options{
//	    Engine:  "radial",
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("cell.svg", result.Artifacts["svg"], 0o644)
//
// # Game
//
// A game session hides the edges of a stored mind map and shuffles its
// nodes over a board. [game.Service] creates sessions, serves boards and
// scores submitted edges with [score.Compare]. Sessions persist in memory,
// on disk, in Redis or in MongoDB.
package pkg
