package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mindtower/pkg/errors"
)

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural invariants every engine relies on:
// node IDs are non-empty and unique, and every edge endpoint names an
// existing node. It returns an ErrCodeInvalidGraph error describing the
// first violation found.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has an empty id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		if n.Level < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q has negative level %d", n.ID, n.Level)
		}
		seen[n.ID] = struct{}{}
	}
	for i, e := range g.Edges {
		if _, ok := seen[e.Source]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d (%s) references unknown source %q", i, e.ID, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d (%s) references unknown target %q", i, e.ID, e.Target)
		}
	}
	return nil
}

// Normalize fills defaults on edges loaded from external sources: missing
// IDs become "e-<source>-<target>" and a missing type becomes floating.
func (g *Graph) Normalize() {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.ID == "" {
			e.ID = fmt.Sprintf("e-%s-%s", e.Source, e.Target)
		}
		if e.Type == "" {
			e.Type = EdgeTypeFloating
		}
	}
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
// Node and edge order is preserved.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes and validates a JSON graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
// Returns validation errors for malformed graphs.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	g.Normalize()
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}
